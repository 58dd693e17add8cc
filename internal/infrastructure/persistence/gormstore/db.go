package gormstore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/text/unicode/norm"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookbridge/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. 按database.driver选择方言(mysql | postgres | sqlite)
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境只记录慢查询
// 4. auto_migrate开启时自动迁移表结构
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 选择方言
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 4. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.Database.Driver == "sqlite" {
		// SQLite只允许一个写连接
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	slog.Info("数据库连接成功", "driver", cfg.Database.Driver)

	// 6. 自动迁移表结构
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		return mysql.Open(cfg.DSN()), nil
	case "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqliteDialector(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

// sqliteDriverName 注册了Unicode版lower()的SQLite驱动
const sqliteDriverName = "sqlite3_bookbridge"

var registerSQLite sync.Once

// sqliteDialector SQLite自带的LOWER/LIKE只处理ASCII大小写,
// 这里在每个连接上用Go实现覆盖内置的lower(),让"Đắc"与"đắc"能互相匹配
// MySQL(utf8mb4)与PostgreSQL(UTF8)的LOWER本身支持Unicode,无需处理
func sqliteDialector(dsn string) gorm.Dialector {
	registerSQLite.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", unicodeLower, true)
			},
		})
	})
	return sqlite.New(sqlite.Config{DriverName: sqliteDriverName, DSN: dsn})
}

// unicodeLower 文本转小写并做NFC规范化,NULL与非文本原样返回
func unicodeLower(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	return norm.NFC.String(strings.ToLower(s))
}

// AutoMigrate 自动迁移表结构
// 注意: AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookTypeModel{},
		&BookModel{},
		&ChatSessionModel{},
		&ChatMessageModel{},
		&OutboxMessageModel{},
	)
}

// BookTypeModel GORM图书分类模型
type BookTypeModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;not null;comment:分类名"`
	Description string `gorm:"type:text;comment:分类描述"`
	IsActive    bool   `gorm:"not null;default:true;comment:是否启用"`
}

// TableName 指定表名
func (BookTypeModel) TableName() string {
	return "book_types"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用numeric(18,2),映射为decimal.Decimal
// 2. idx_candidate覆盖对话检索的基础条件(书店、上架、库存)
// 3. 下架通过is_active实现,不做物理删除
type BookModel struct {
	ID            uint            `gorm:"primaryKey"`
	ISBN          string          `gorm:"size:20;index;comment:ISBN号"`
	Title         string          `gorm:"size:255;not null;comment:书名"`
	Author        string          `gorm:"size:255;comment:作者"`
	Translator    string          `gorm:"size:255;comment:译者"`
	Publisher     string          `gorm:"size:255;comment:出版社"`
	PublishedDate *time.Time      `gorm:"comment:出版日期"`
	Language      string          `gorm:"size:50;comment:语言"`
	PageCount     *int            `gorm:"comment:页数"`
	Description   string          `gorm:"type:text;comment:图书描述"`
	Price         decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0;comment:价格"`
	Quantity      int             `gorm:"index:idx_candidate,priority:3;not null;default:0;comment:库存数量"`
	TypeID        uint            `gorm:"index;comment:分类ID"`
	BookstoreID   uint            `gorm:"index:idx_candidate,priority:1;not null;comment:书店ID"`
	IsActive      bool            `gorm:"index:idx_candidate,priority:2;not null;default:true;comment:是否上架"`
	AverageRating *float64        `gorm:"comment:平均评分"`
	RatingsCount  *int            `gorm:"comment:评分人数"`
	ImageURL      string          `gorm:"size:500;comment:封面图片URL"`
	CreatedAt     time.Time       `gorm:"index;comment:创建时间"`
	UpdatedAt     time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ChatSessionModel GORM会话模型
type ChatSessionModel struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      *string   `gorm:"size:64;index:idx_user_active,priority:1;comment:用户ID(匿名为空)"`
	BookstoreID *uint     `gorm:"comment:书店范围"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	LastActive  time.Time `gorm:"index:idx_user_active,priority:2;comment:最后活跃时间"`

	Messages []ChatMessageModel `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (ChatSessionModel) TableName() string {
	return "chat_sessions"
}

// ChatMessageModel GORM消息模型
type ChatMessageModel struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uint      `gorm:"index:idx_session_time,priority:1;not null;comment:会话ID"`
	Sender    string    `gorm:"size:150;not null;comment:发送者标签"`
	Kind      string    `gorm:"size:16;not null;comment:user|assistant"`
	Content   string    `gorm:"type:text;not null;comment:内容"`
	Timestamp time.Time `gorm:"column:sent_at;index:idx_session_time,priority:2;comment:发送时间"`
}

// TableName 指定表名
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// OutboxMessageModel GORM事件模型
type OutboxMessageModel struct {
	ID          uint           `gorm:"primaryKey"`
	MessageID   string         `gorm:"size:36;uniqueIndex;not null;comment:消息ID"`
	EventType   string         `gorm:"size:64;not null;comment:事件类型"`
	Payload     datatypes.JSON `gorm:"not null;comment:事件内容"`
	Status      string         `gorm:"size:16;index:idx_status_created,priority:1;not null;comment:pending|published|failed"`
	TraceID     string         `gorm:"size:32;comment:链路ID"`
	Attempts    int            `gorm:"not null;default:0;comment:投递次数"`
	LastError   string         `gorm:"type:text;comment:最近一次失败原因"`
	CreatedAt   time.Time      `gorm:"index:idx_status_created,priority:2;comment:创建时间"`
	PublishedAt *time.Time     `gorm:"comment:投递时间"`
}

// TableName 指定表名
func (OutboxMessageModel) TableName() string {
	return "outbox_messages"
}
