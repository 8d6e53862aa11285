package schema

// AuthMode selects how generated projects authenticate requests.
type AuthMode string

const (
	AuthNone    AuthMode = "none"
	AuthJWT     AuthMode = "jwt"
	AuthSession AuthMode = "session"
)

// AuthModes lists every valid auth mode.
var AuthModes = []AuthMode{AuthNone, AuthJWT, AuthSession}

// Valid reports whether m is a known auth mode.
func (m AuthMode) Valid() bool {
	for _, am := range AuthModes {
		if m == am {
			return true
		}
	}
	return false
}

// Database selects the storage backend for generated projects.
type Database string

const (
	MongoDB  Database = "mongodb"
	Postgres Database = "postgres"
	Supabase Database = "supabase"
	Firebase Database = "firebase"
)

// Databases lists every valid storage backend.
var Databases = []Database{MongoDB, Postgres, Supabase, Firebase}

// Valid reports whether d is a known storage backend.
func (d Database) Valid() bool {
	for _, db := range Databases {
		if d == db {
			return true
		}
	}
	return false
}

// EmailService selects the transactional email provider.
type EmailService string

const (
	EmailNone EmailService = "none"
	Resend    EmailService = "resend"
	Sendgrid  EmailService = "sendgrid"
	Mailgun   EmailService = "mailgun"
)

// EmailServices lists every valid email service.
var EmailServices = []EmailService{EmailNone, Resend, Sendgrid, Mailgun}

// Valid reports whether e is a known email service.
func (e EmailService) Valid() bool {
	for _, es := range EmailServices {
		if e == es {
			return true
		}
	}
	return false
}

// CORSConfig is the cross-origin policy for generated projects.
type CORSConfig struct {
	Enabled bool
	Origins []string
}

// Config holds the global feature toggles for one generation run.
// Values are read-only after validation.
type Config struct {
	ProjectName string
	Auth        AuthMode
	Database    Database
	Email       EmailService
	CORS        CORSConfig

	// Requires is an optional version constraint on the generator
	// itself, e.g. ">= 0.2.0".
	Requires string
}
