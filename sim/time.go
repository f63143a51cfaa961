package sim

// Time is the constraint satisfied by the numeric types that can serve as
// simulation time. A time type must support addition and comparison, and its
// zero value is the instant at which every simulation starts.
type Time interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// VTimeInSec defines the time in the simulated space in the unit of second.
// It is the default time type used throughout the examples.
type VTimeInSec float64
