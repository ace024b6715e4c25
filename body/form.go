// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package body

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// formFieldCache avoids re-walking struct tags with reflection on every
// decode, the way router/binding.go caches its own structInfo per type.
var formFieldCache sync.Map // map[reflect.Type][]formField

type formField struct {
	index []int
	name  string
	kind  reflect.Kind
}

// Form decodes application/x-www-form-urlencoded bytes into T by matching
// "form" struct tags (falling back to the lowercased field name) against
// parsed form values. Use as body.TakeAs(ctx, b, body.Form[MyType]).
func Form[T any](data []byte, _ string) (T, error) {
	var v T
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return v, fmt.Errorf("body: form decode: %w", err)
	}
	if err := populateForm(&v, values); err != nil {
		return v, err
	}
	return v, nil
}

func populateForm(dst any, values url.Values) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("body: form decode target must be a pointer to struct")
	}
	elem := rv.Elem()
	fields := formFieldsFor(elem.Type())

	for _, f := range fields {
		raw, ok := values[f.name]
		if !ok || len(raw) == 0 {
			continue
		}
		field := elem.FieldByIndex(f.index)
		if err := setFormField(field, raw[0]); err != nil {
			return fmt.Errorf("body: form field %q: %w", f.name, err)
		}
	}
	return nil
}

func formFieldsFor(t reflect.Type) []formField {
	if cached, ok := formFieldCache.Load(t); ok {
		return cached.([]formField)
	}

	fields := make([]formField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("form")
		if tag == "-" {
			continue
		}
		name := tag
		if name == "" {
			name = strings.ToLower(sf.Name)
		}
		fields = append(fields, formField{index: sf.Index, name: name, kind: sf.Type.Kind()})
	}

	formFieldCache.Store(t, fields)
	return fields
}

func setFormField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}
