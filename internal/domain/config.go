package domain

// Config is the runtime site identity handed down to services and handlers.
type Config struct {
	FQDN string `yaml:"fqdn"`

	// OperatorTokenHash is the bcrypt hash of the back-office bearer token.
	OperatorTokenHash string `yaml:"operatorTokenHash"`
}
