package flashjson

import (
	"errors"
	"reflect"

	"github.com/flashjson/flashjson-go/internal/tape"
)

// decoder binds a parsed tape.Element to a Go value via reflection. It
// carries no state of its own; the tape has already done all the
// grammar/type validation by the time decode is called.
type decoder struct{}

func (d *decoder) decode(el tape.Element, dst reflect.Value) error {
	if dst.Kind() == reflect.Ptr {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return d.decode(el, dst.Elem())
	}

	if el.IsNull() {
		switch dst.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map:
			dst.Set(reflect.Zero(dst.Type()))
		}
		return nil
	}

	if dst.Kind() == reflect.Interface && dst.Type().NumMethod() == 0 {
		v, err := d.toInterface(el)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(v))
		return nil
	}

	switch el.Kind() {
	case tape.TagTrue, tape.TagFalse:
		b, _ := el.Bool()
		return d.decodeBool(b, dst)
	case tape.TagInt64:
		i, _ := el.Int64()
		return d.decodeInt(i, dst)
	case tape.TagDouble:
		f, _ := el.Float64()
		return d.decodeFloat(f, dst)
	case tape.TagString:
		s, _ := el.String()
		return d.decodeString(s, dst)
	case tape.TagArrayStart:
		arr, _ := el.Array()
		return d.decodeArray(arr, dst)
	case tape.TagObjectStart:
		obj, _ := el.Object()
		return d.decodeObject(obj, dst)
	default:
		return errors.New("unexpected value on tape")
	}
}

// toInterface materializes a value the way encoding/json does for an
// interface{} destination: objects become map[string]interface{}, arrays
// become []interface{}, and every number becomes float64 regardless of
// whether the tape stored it as an int64 or a double.
func (d *decoder) toInterface(el tape.Element) (interface{}, error) {
	switch el.Kind() {
	case tape.TagNull:
		return nil, nil
	case tape.TagTrue:
		return true, nil
	case tape.TagFalse:
		return false, nil
	case tape.TagInt64:
		i, _ := el.Int64()
		return float64(i), nil
	case tape.TagDouble:
		f, _ := el.Float64()
		return f, nil
	case tape.TagString:
		s, _ := el.String()
		return s, nil
	case tape.TagArrayStart:
		arr, _ := el.Array()
		elems := arr.Elements()
		out := make([]interface{}, len(elems))
		for i, e := range elems {
			v, err := d.toInterface(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case tape.TagObjectStart:
		obj, _ := el.Object()
		fields := obj.Fields()
		out := make(map[string]interface{}, len(fields))
		for _, f := range fields {
			v, err := d.toInterface(f.Value)
			if err != nil {
				return nil, err
			}
			out[f.Key] = v
		}
		return out, nil
	default:
		return nil, errors.New("unexpected value on tape")
	}
}

func (d *decoder) decodeBool(src bool, dst reflect.Value) error {
	if dst.Kind() == reflect.Bool {
		dst.SetBool(src)
		return nil
	}
	return errors.New("cannot unmarshal bool into " + dst.Type().String())
}

func (d *decoder) decodeInt(src int64, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(src)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if src < 0 {
			return errors.New("cannot unmarshal negative number into " + dst.Type().String())
		}
		dst.SetUint(uint64(src))
		return nil
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(float64(src))
		return nil
	}
	return errors.New("cannot unmarshal number into " + dst.Type().String())
}

func (d *decoder) decodeFloat(src float64, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(src)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(src))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(src))
		return nil
	}
	return errors.New("cannot unmarshal number into " + dst.Type().String())
}

func (d *decoder) decodeString(src string, dst reflect.Value) error {
	if dst.Kind() == reflect.String {
		dst.SetString(src)
		return nil
	}
	return errors.New("cannot unmarshal string into " + dst.Type().String())
}

func (d *decoder) decodeArray(arr tape.Array, dst reflect.Value) error {
	elems := arr.Elements()
	switch dst.Kind() {
	case reflect.Slice:
		if dst.IsNil() || dst.Len() < len(elems) {
			dst.Set(reflect.MakeSlice(dst.Type(), len(elems), len(elems)))
		}
		for i, e := range elems {
			if err := d.decode(e, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Array:
		if dst.Len() < len(elems) {
			return errors.New("array too small")
		}
		for i, e := range elems {
			if err := d.decode(e, dst.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return errors.New("cannot unmarshal array into " + dst.Type().String())
}

func (d *decoder) decodeObject(obj tape.Object, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return errors.New("map key must be string")
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMap(dst.Type()))
		}
		elemType := dst.Type().Elem()
		for _, f := range obj.Fields() {
			keyVal := reflect.New(dst.Type().Key()).Elem()
			keyVal.SetString(f.Key)
			elemVal := reflect.New(elemType).Elem()
			if err := d.decode(f.Value, elemVal); err != nil {
				return err
			}
			dst.SetMapIndex(keyVal, elemVal)
		}
		return nil

	case reflect.Struct:
		return d.decodeStruct(obj, dst)
	}
	return errors.New("cannot unmarshal object into " + dst.Type().String())
}

func (d *decoder) decodeStruct(obj tape.Object, dst reflect.Value) error {
	typ := dst.Type()

	fields := make(map[string]int, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name := field.Name
		if tag != "" {
			if idx := findComma(tag); idx != -1 {
				name = tag[:idx]
			} else {
				name = tag
			}
		}
		fields[name] = i
	}

	for _, f := range obj.Fields() {
		idx, ok := fields[f.Key]
		if !ok {
			continue
		}
		field := dst.Field(idx)
		if field.CanSet() {
			if err := d.decode(f.Value, field); err != nil {
				return err
			}
		}
	}
	return nil
}

func findComma(s string) int {
	for i, c := range s {
		if c == ',' {
			return i
		}
	}
	return -1
}
