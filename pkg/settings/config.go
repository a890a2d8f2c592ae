package settings

type Config struct {
	Server        Server        `mapstructure:"server"`
	Logger        Logger        `mapstructure:"logger"`
	Redis         Redis         `mapstructure:"redis"`
	Kafka         Kafka         `mapstructure:"kafka"`
	Inventory     Inventory     `mapstructure:"inventory"`
	Snapshot      Snapshot      `mapstructure:"snapshot"`
	Events        Events        `mapstructure:"events"`
	SnowflakeNode SnowflakeNode `mapstructure:"snowflake_node"`
}

// Server is the configuration for the debug HTTP server
type Server struct {
	Mode string `mapstructure:"mode"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Logger is the configuration for the logger
type Logger struct {
	LogLevel    string `mapstructure:"log_level"`
	FileLogName string `mapstructure:"file_log_name"`
	MaxBackups  int    `mapstructure:"max_backups"`
	MaxAge      int    `mapstructure:"max_age"`
	MaxSize     int    `mapstructure:"max_size"`
	Compress    bool   `mapstructure:"compress"`
}

// Redis is the configuration for Redis
type Redis struct {
	Addrs           []string `mapstructure:"addrs"`
	MasterName      string   `mapstructure:"master_name"`
	Host            string   `mapstructure:"host"`
	Password        string   `mapstructure:"password"`
	Database        int      `mapstructure:"database"`
	Port            int      `mapstructure:"port"`
	PoolSize        int      `mapstructure:"pool_size"`
	MinIdleConns    int      `mapstructure:"min_idle_conns"`
	PoolTimeout     int      `mapstructure:"pool_timeout"`
	DialTimeout     int      `mapstructure:"dial_timeout"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	MaxRetries      int      `mapstructure:"max_retries"`
	MaxRetryBackoff int      `mapstructure:"max_retry_backoff"`
	MinRetryBackoff int      `mapstructure:"min_retry_backoff"`
}

// Kafka is the configuration for Kafka
type Kafka struct {
	Brokers         []string `mapstructure:"brokers"`
	Topic           string   `mapstructure:"topic"`
	FlushFrequency  int      `mapstructure:"flush_frequency"`   // Milliseconds
	FlushBytes      int      `mapstructure:"flush_bytes"`       // Bytes
	MaxMessageBytes int      `mapstructure:"max_message_bytes"` // Bytes
	Timeout         int      `mapstructure:"timeout"`           // Seconds
	MaxRetries      int      `mapstructure:"max_retries"`       // Number of retries
	RetryBackoff    int      `mapstructure:"retry_backoff"`     // Milliseconds
}

// Inventory is the configuration for per-session inventories
type Inventory struct {
	DefaultCapacity int `mapstructure:"default_capacity"`
	VisibleSlots    int `mapstructure:"visible_slots"`
}

// Snapshot is the configuration for inventory snapshot persistence
type Snapshot struct {
	KeyPrefix  string `mapstructure:"key_prefix"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// Events is the configuration for the pickup event pipeline
type Events struct {
	QueueCapacity int `mapstructure:"queue_capacity"`
	StripeSize    int `mapstructure:"stripe_size"`
}

type Snowflake struct {
	Epoch     int64 `mapstructure:"epoch"`
	Node      uint8 `mapstructure:"node"`
	Step      uint8 `mapstructure:"step"`
	TotalBits uint8 `mapstructure:"total_bits"`
}

type SnowflakeNode struct {
	Config   Snowflake
	WorkerID int64 `mapstructure:"worker_id"`
}
