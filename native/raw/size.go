package raw

import (
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrManagedElem indicates an element type that holds Go pointers. Blocks are
// invisible to the garbage collector, so such values cannot be stored in them.
var ErrManagedElem = errors.New("raw: element type contains Go pointers")

type typeInfo struct {
	size int
	err  error
}

var typeCache sync.Map // reflect.Type -> typeInfo

func infoFor[T any]() typeInfo {
	rt := reflect.TypeFor[T]()
	if v, ok := typeCache.Load(rt); ok {
		return v.(typeInfo)
	}
	info := typeInfo{size: int(rt.Size())}
	if path, ok := managedPath(rt); ok {
		info.err = errors.Wrapf(ErrManagedElem, "%s: %s", rt, path)
	}
	v, _ := typeCache.LoadOrStore(rt, info)
	return v.(typeInfo)
}

// SizeOf returns the size in bytes of T. The value is computed once per type.
func SizeOf[T any]() int {
	return infoFor[T]().size
}

// CheckElem reports whether T may be stored in a block: T must not contain
// pointers, slices, strings, maps, channels, funcs or interfaces at any depth.
func CheckElem[T any]() error {
	return infoFor[T]().err
}

// managedPath returns a description of the first pointer-bearing component of t.
func managedPath(t reflect.Type) (string, bool) {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "", false
	case reflect.Array:
		if t.Len() == 0 {
			return "", false
		}
		if path, ok := managedPath(t.Elem()); ok {
			return "[]" + path, true
		}
		return "", false
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if path, ok := managedPath(f.Type); ok {
				return f.Name + "." + path, true
			}
		}
		return "", false
	default:
		return t.Kind().String(), true
	}
}
