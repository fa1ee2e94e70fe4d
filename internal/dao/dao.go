// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"time"

	"github.com/quickpost/post-sync-service/internal/model"
	"github.com/quickpost/post-sync-service/pkg/fileurl"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// DatabaseConfig 数据库配置（由上层注入，不依赖全局配置）
type DatabaseConfig struct {
	Type            string // sqlite / mysql
	Path            string // sqlite 数据库文件路径
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // 分钟
	ConnMaxIdleTime int // 分钟
	RunMode         string
}

// Dao 数据访问对象，持有数据库连接
type Dao struct {
	Db *gorm.DB
}

// New 创建 Dao 实例
func New(db *gorm.DB) *Dao {
	return &Dao{Db: db}
}

// DB 获取底层数据库连接
func (d *Dao) DB() *gorm.DB {
	return d.Db
}

// dialector 根据配置选择数据库驱动
func dialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "sqlite":
		if c.Path != "" {
			_ = fileurl.CreatePath(c.Path, 0754)
		}
		return sqlite.Open(c.Path), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=UTC",
			c.UserName, c.Password, c.Host, c.Name, c.Charset, c.ParseTime)
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}
}

// NewDBEngineWithConfig 创建数据库引擎（使用注入的配置）
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {

	d, err := dialector(c)
	if err != nil {
		return nil, err
	}

	logMode := logger.Silent
	if c.RunMode == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// sqlite 写入串行化，多连接只会换来 SQLITE_BUSY
	if c.Type == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
		if c.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Minute)
		}
		if c.ConnMaxIdleTime > 0 {
			sqlDB.SetConnMaxIdleTime(time.Duration(c.ConnMaxIdleTime) * time.Minute)
		}
	}

	if c.AutoMigrate {
		if err := model.AutoMigrateAll(db); err != nil {
			return nil, err
		}
		if lg != nil {
			lg.Info("database migrated", zap.String("type", c.Type))
		}
	}

	return db, nil
}
