package helpers

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"
)

var ErrNotPlainData = errors.New("type is not plain data")

func Sizeof[T any]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Bytesof returns the memory of *v as a byte slice aliasing v.
// T must be plain data, see CheckPlain.
func Bytesof[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), size)
}

// CheckPlain returns ErrNotPlainData if T holds anything that refers to
// memory outside of the value itself.
func CheckPlain[T any]() error {
	var v T
	return checkPlain(reflect.TypeOf(&v).Elem())
}

func checkPlain(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		if err := checkPlain(t.Elem()); err != nil {
			return errors.Wrapf(err, "array %s", t)
		}
		return nil
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if err := checkPlain(f.Type); err != nil {
				return errors.Wrapf(err, "field %s.%s", t, f.Name)
			}
		}
		return nil
	default:
		return errors.Wrapf(ErrNotPlainData, "%s (%s)", t, t.Kind())
	}
}
