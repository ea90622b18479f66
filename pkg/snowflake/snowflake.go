package snowflake

// Snowflake mints unique, roughly time-ordered 63-bit ids.
type Snowflake interface {
	Generate() int64
}
