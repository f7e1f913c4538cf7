package container

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfRange indicates an index outside [0, Len()) or an empty pop.
	ErrOutOfRange = errors.New("container: index out of range")

	// ErrInvalidArgument indicates a bad constructor option or range argument.
	ErrInvalidArgument = errors.New("container: invalid argument")

	// ErrDisposed indicates use of a closed or moved-from container. It also
	// matches ErrInvalidArgument.
	ErrDisposed = errors.Mark(errors.New("container: disposed"), ErrInvalidArgument)
)

func outOfRange(index, count int) error {
	return errors.Wrapf(ErrOutOfRange, "index %d, count %d", index, count)
}
