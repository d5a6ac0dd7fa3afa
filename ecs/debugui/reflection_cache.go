package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component type.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
	// IsPlanar marks struct fields shaped like {X, Y float32}, edited as one pair.
	IsPlanar bool
}

// Editable reports whether the inspector can edit the field in place.
func (f FieldInfo) Editable() bool {
	if f.IsPointer {
		return false
	}
	if f.IsPlanar {
		return true
	}
	return scalar(f.Type.Kind())
}

func scalar(k reflect.Kind) bool {
	switch k {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// planar reports whether t is a struct of exactly X and Y float32 fields, the
// shape shared by positions, velocities and scales.
func planar(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || t.NumField() != 2 {
		return false
	}
	x, y := t.Field(0), t.Field(1)
	return x.Name == "X" && y.Name == "Y" &&
		x.Type.Kind() == reflect.Float32 && y.Type.Kind() == reflect.Float32
}

// ReflectionCache memoises field layouts per component type; the inspector
// asks for the same few types every frame.
type ReflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fields: make(map[reflect.Type][]FieldInfo),
	}
}

// Fields returns the exported fields of t, or nil when t is not a struct.
func (rc *ReflectionCache) Fields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fields[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	fields := layout(t)

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if cached, ok := rc.fields[t]; ok {
		return cached
	}
	rc.fields[t] = fields
	return fields
}

func layout(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		ft := sf.Type
		isPointer := ft.Kind() == reflect.Pointer
		if isPointer {
			ft = ft.Elem()
		}

		fields = append(fields, FieldInfo{
			Name:      sf.Name,
			Type:      ft,
			Index:     i,
			IsPointer: isPointer,
			IsStruct:  ft.Kind() == reflect.Struct,
			IsSlice:   ft.Kind() == reflect.Slice,
			IsMap:     ft.Kind() == reflect.Map,
			IsPlanar:  planar(ft),
		})
	}
	return fields
}

var fieldCache = NewReflectionCache()
