package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"labschedule_backend/internals/configs"
	dirModel "labschedule_backend/internals/features/labs/directory/model"
	pracModel "labschedule_backend/internals/features/labs/practicals/model"
	ttModel "labschedule_backend/internals/features/labs/timetables/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Info().Str("driver", configs.DBDriver).Msg("🔌 Koneksi ke database...")

	dialector, err := Dialector(configs.DBDriver)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Driver DB tidak dikenal")
	}

	db, err := Open(dialector)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Gagal konek DB")
	}
	DB = db
	log.Info().Msg("✅ DB connected.")
}

// Dialector memilih driver berdasarkan DB_DRIVER.
func Dialector(driver string) (gorm.Dialector, error) {
	switch driver {
	case "", "postgres":
		// statement_timeout selaras dengan timeout request di main.go
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=labschedule&options=-c statement_timeout=3000",
			configs.DBUser, configs.DBPassword, configs.DBHost, configs.DBPort, configs.DBName, configs.DBSSLMode,
		)
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
		}), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			configs.DBUser, configs.DBPassword, configs.DBHost, configs.DBPort, configs.DBName)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(configs.DBPath + "?_foreign_keys=on&_busy_timeout=5000"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// Open membuka koneksi dengan konfigurasi standar. TranslateError wajib aktif:
// guard booking mengandalkan gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
	})
}

// Migrate membuat tabel + unique index yang menjaga invariant slot dan booking.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&dirModel.LabModel{},
		&dirModel.TeacherModel{},
		&ttModel.TeacherTimetableSlotModel{},
		&ttModel.LabTimetableSlotModel{},
		&ttModel.TimetableRevisionModel{},
		&pracModel.PracticalScheduleModel{},
	)
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Error().Err(err).Msg("pool tune err")
		return
	}
	if configs.DBDriver == "sqlite" {
		// satu writer saja
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(); err != nil {
			log.Warn().Err(err).Msg("warm-up ping err")
		}
	}()
}

func Ping() error { return PingDB(DB) }

// PingDB dipakai /health; db boleh selain DB global (test).
func PingDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
