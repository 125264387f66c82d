package traceid

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/sony/sonyflake/v2"
)

// Names accepted by Lookup.
const (
	GeneratorUUID      = "uuid"
	GeneratorUUIDv7    = "uuidv7"
	GeneratorXID       = "xid"
	GeneratorSonyflake = "sonyflake"
)

var (
	ErrUnknownGenerator = errors.New("unknown trace id generator")
	ErrGeneratorInit    = errors.New("failed to initialize trace id generator")
)

// UUID returns the default generator. Every call yields a random (version 4)
// UUID in its canonical 36 character form.
func UUID() Generator[string] {
	return GeneratorFunc[string](uuid.NewString)
}

// UUIDv7 returns a generator of time-ordered (version 7) UUIDs.
// If a v7 UUID cannot be produced, a random v4 UUID is returned instead.
func UUIDv7() Generator[string] {
	return GeneratorFunc[string](func() string {
		id, err := uuid.NewV7()
		if err != nil {
			slog.Warn("failed to generate uuid v7, falling back to v4", slog.Any("error", err))
			return uuid.NewString()
		}

		return id.String()
	})
}

// XID returns a generator of 20 character, lexically sortable ids.
func XID() Generator[string] {
	return GeneratorFunc[string](func() string {
		return xid.New().String()
	})
}

// Sonyflake creates a generator of 64-bit Sonyflake ids rendered in base 36.
// It returns an error if the Sonyflake instance cannot be built from settings,
// for example when no machine id can be derived.
// Once built, a failing NextID call results in Unavailable.
func Sonyflake(settings sonyflake.Settings) (Generator[string], error) {
	sf, err := sonyflake.New(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneratorInit, err)
	}

	return GeneratorFunc[string](func() string {
		id, err := sf.NextID()
		if err != nil {
			slog.Warn("failed to generate sonyflake id", slog.Any("error", err))
			return Unavailable
		}

		return strconv.FormatInt(id, 36)
	}), nil
}

// Lookup resolves one of the built-in string generators by name.
// Sonyflake is built with default settings.
func Lookup(name string) (Generator[string], error) {
	switch name {
	case GeneratorUUID:
		return UUID(), nil
	case GeneratorUUIDv7:
		return UUIDv7(), nil
	case GeneratorXID:
		return XID(), nil
	case GeneratorSonyflake:
		return Sonyflake(sonyflake.Settings{})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
}
