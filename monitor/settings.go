package monitor

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

// settings are the monitor's adjustable defaults.
type settings struct {
	DisasmLines     int    `doc:"default number of lines to disassemble"`
	MemDumpBytes    int    `doc:"default number of memory bytes to dump"`
	StepLines       int    `doc:"default number of instructions to step"`
	ShowRegisters   bool   `doc:"display registers after stepping"`
	NextDisasmAddr  uint32 `doc:"address of next disassembly"`
	NextMemDumpAddr uint32 `doc:"address of next memory dump"`
}

func newSettings() *settings {
	return &settings{
		DisasmLines:  10,
		MemDumpBytes: 64,
		StepLines:    1,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeFor[settings]()
	settingsFields = make([]settingsField, settingsType.NumField())
	for n := range settingsFields {
		field := settingsType.Field(n)
		doc, _ := field.Tag.Lookup("doc")
		settingsFields[n] = settingsField{
			name:  field.Name,
			index: n,
			kind:  field.Type.Kind(),
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(field.Name), &settingsFields[n])
	}
}

// Display writes every setting and its description.
func (s *settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for n, field := range settingsFields {
		v := value.Field(n)
		var text string
		switch field.kind {
		case reflect.Uint32:
			text = fmt.Sprintf("    %-16s %#08x", field.name, v.Uint())
		default:
			text = fmt.Sprintf("    %-16s %v", field.name, v)
		}
		fmt.Fprintf(w, "%-32s (%s)\n", text, field.doc)
	}
}

// Set parses text into the setting whose name has the unique prefix key.
func (s *settings) Set(key string, text string) (err error) {
	field, err := settingsTree.FindValue(strings.ToLower(key))
	if err != nil {
		err = &ErrSetting{Name: key, Err: err}
		return
	}

	out := reflect.ValueOf(s).Elem().Field(field.index)
	switch field.kind {
	case reflect.Bool:
		var value bool
		value, err = strconv.ParseBool(text)
		if err != nil {
			break
		}
		out.SetBool(value)
	case reflect.Int:
		var value int64
		value, err = strconv.ParseInt(text, 0, 32)
		if err != nil {
			break
		}
		out.SetInt(value)
	case reflect.Uint32:
		var value uint64
		value, err = strconv.ParseUint(text, 0, 32)
		if err != nil {
			break
		}
		out.SetUint(value)
	default:
		err = ErrSettingType
	}

	if err != nil {
		err = &ErrSetting{Name: field.name, Err: err}
	}

	return
}
