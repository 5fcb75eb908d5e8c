package method

// MaxOperand bounds |a| and |b| so every intermediate fits in an int64.
const MaxOperand = 1_000_000_000

// Config holds the tunable pattern bounds of the selector.
type Config struct {
	// PowerOfTenMaxDeviation caps |x − p| for the near-power-of-ten pattern.
	// The effective bound is also limited to p/5.
	PowerOfTenMaxDeviation int64 `yaml:"power_of_ten_max_deviation" json:"power_of_ten_max_deviation"`

	// NearHundredMaxDeviation caps |x − 100| for both operands.
	NearHundredMaxDeviation int64 `yaml:"near_hundred_max_deviation" json:"near_hundred_max_deviation"`

	// SymmetricMaxDeviation caps the half-distance d for difference of squares.
	SymmetricMaxDeviation int64 `yaml:"symmetric_max_deviation" json:"symmetric_max_deviation"`

	// MaxAlternatives is how many runner-ups are derived and validated.
	MaxAlternatives int `yaml:"max_alternatives" json:"max_alternatives"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PowerOfTenMaxDeviation:  10,
		NearHundredMaxDeviation: 10,
		SymmetricMaxDeviation:   10,
		MaxAlternatives:         3,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PowerOfTenMaxDeviation <= 0 {
		c.PowerOfTenMaxDeviation = d.PowerOfTenMaxDeviation
	}
	if c.NearHundredMaxDeviation <= 0 {
		c.NearHundredMaxDeviation = d.NearHundredMaxDeviation
	}
	if c.SymmetricMaxDeviation <= 0 {
		c.SymmetricMaxDeviation = d.SymmetricMaxDeviation
	}
	if c.MaxAlternatives < 0 {
		c.MaxAlternatives = 0
	}
	return c
}
