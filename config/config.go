package config

type Config struct {
	Auth          Auth          `yaml:"auth" validate:"required"`
	Notifications Notifications `yaml:"notifications" validate:"required"`
	Reminders     Reminders     `yaml:"reminders" validate:"required"`
	Meta          Meta          `yaml:"meta" validate:"required"`
}

type Auth struct {
	// The whole API sits behind one shared password, there is no user system
	Password string `yaml:"password" comment:"Shared API password" validate:"required"`
}

type Notifications struct {
	VapidPublicKey  string `yaml:"vapid_public_key" comment:"Vapid Public Key (https://www.stephane-quantin.com/en/tools/generators/vapid-keys)" validate:"required"`
	VapidPrivateKey string `yaml:"vapid_private_key" comment:"Vapid Private Key (https://www.stephane-quantin.com/en/tools/generators/vapid-keys)" validate:"required"`
	Subscriber      string `yaml:"subscriber" default:"reminders@lifeos.local" comment:"Contact address sent to the push service" validate:"required,email"`
	Icon            string `yaml:"icon" default:"/icon.png" comment:"Icon URL embedded in reminder payloads" validate:"required"`
	TTL             int    `yaml:"ttl" default:"60" comment:"Push message TTL in seconds" validate:"required,min=1"`
}

type Reminders struct {
	IntervalSeconds int `yaml:"interval_seconds" default:"60" comment:"Scheduler tick interval in seconds" validate:"required,min=1"`
}

type Meta struct {
	PostgresURL string `yaml:"postgres_url" default:"postgresql:///lifeos" comment:"Postgres URL" validate:"required"`
	RedisURL    string `yaml:"redis_url" default:"redis://localhost:6379" comment:"Redis URL" validate:"required"`
	Port        string `yaml:"port" default:":8080" comment:"Port to run the server on" validate:"required"`
}
