package validation

import "time"

// Values нормализованный payload: только поля, прошедшие свои правила
type Values map[string]any

// Has reports whether the field is present after normalization
func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func (v Values) String(field string) (string, bool) {
	s, ok := v[field].(string)
	return s, ok
}

func (v Values) Int(field string) (int, bool) {
	i, ok := v[field].(int)
	return i, ok
}

func (v Values) Float(field string) (float64, bool) {
	f, ok := v[field].(float64)
	return f, ok
}

func (v Values) Bool(field string) (bool, bool) {
	b, ok := v[field].(bool)
	return b, ok
}

func (v Values) Time(field string) (time.Time, bool) {
	t, ok := v[field].(time.Time)
	return t, ok
}

func (v Values) Strings(field string) ([]string, bool) {
	s, ok := v[field].([]string)
	return s, ok
}

// StringPtr returns a pointer to the string value or nil when absent
func (v Values) StringPtr(field string) *string {
	if s, ok := v.String(field); ok {
		return &s
	}
	return nil
}

// FloatPtr returns a pointer to the float value or nil when absent
func (v Values) FloatPtr(field string) *float64 {
	if f, ok := v.Float(field); ok {
		return &f
	}
	return nil
}

// IntPtr returns a pointer to the int value or nil when absent
func (v Values) IntPtr(field string) *int {
	if i, ok := v.Int(field); ok {
		return &i
	}
	return nil
}
