package util

import (
	"reflect"
	"sync"
)

type Any = interface{}

func IsReallyNil(value Any) bool {
	if value == nil {
		return true
	}
	switch reflect_value := reflect.ValueOf(value); reflect_value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Ptr,
		reflect.UnsafePointer, reflect.Interface, reflect.Slice:
		return reflect_value.IsNil()
	default:
		return false
	}
}

func PanicIfNotNil(value Any) {
	if !IsReallyNil(value) {
		panic(value)
	}
}

func LockUnlock(l sync.Locker) func() {
	l.Lock()
	return l.Unlock
}
