package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
)

// maxSliceItems caps how many slice elements the inspector expands.
const maxSliceItems = 32

var readOnlyColor = imgui.NewVec4(0.6, 0.6, 0.6, 1.0)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component of the selected entity, one field table per
// kind. Stores hand out pointers, so edits land directly in the live component.
func (ci *ComponentInspectorComponent) Render(c *ecs.Catalog, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ci.selectedEntity = selected
	if ci.selectedEntity == ecs.Nil {
		imgui.Text("No entity selected")
		return
	}

	kinds := c.KindsOf(ci.selectedEntity)
	imgui.Text(fmt.Sprintf("Entity %d: %d components", ci.selectedEntity, len(kinds)))
	imgui.Separator()

	for _, kind := range kinds {
		store, ok := c.StoreOf(kind)
		if !ok {
			continue
		}
		component, ok := store.Value(ci.selectedEntity)
		if !ok {
			continue
		}

		if imgui.TreeNodeStr(kind.String()) {
			inspect(kind.String(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

// inspect lays out val as a name/value table. Non-struct kinds get a single row.
func inspect(id string, val reflect.Value) {
	flags := imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV(id, 2, flags, imgui.NewVec2(0, 0), 0) {
		return
	}
	defer imgui.EndTable()

	fields := fieldCache.Fields(val.Type())
	if fields == nil {
		row("value", val, FieldInfo{Name: "value", Type: val.Type()})
		return
	}

	for _, field := range fields {
		fv := val.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(field.Name)
				imgui.TableNextColumn()
				imgui.TextColored(readOnlyColor, "nil")
				continue
			}
			fv = fv.Elem()
		}
		row(id+"."+field.Name, fv, field)
	}
}

func row(id string, val reflect.Value, field FieldInfo) {
	imgui.TableNextRow()
	imgui.TableNextColumn()
	imgui.Text(field.Name)
	imgui.TableNextColumn()

	label := "##" + id
	switch {
	case !val.IsValid():
		imgui.TextColored(readOnlyColor, "<invalid>")

	case field.IsPlanar:
		editPlanar(label, val)

	case scalar(val.Kind()):
		if !val.CanSet() {
			imgui.TextColored(readOnlyColor, fmt.Sprintf("%v", val.Interface()))
			return
		}
		editScalar(label, val)

	case val.Kind() == reflect.Struct:
		if imgui.TreeNodeStr(val.Type().String() + label) {
			inspect(id, val)
			imgui.TreePop()
		}

	case val.Kind() == reflect.Slice:
		if imgui.TreeNodeStr(fmt.Sprintf("[%d items]%s", val.Len(), label)) {
			for i := range min(val.Len(), maxSliceItems) {
				imgui.BulletText(fmt.Sprintf("%d: %v", i, val.Index(i).Interface()))
			}
			if val.Len() > maxSliceItems {
				imgui.TextColored(readOnlyColor, fmt.Sprintf("... %d more", val.Len()-maxSliceItems))
			}
			imgui.TreePop()
		}

	case val.Kind() == reflect.Map:
		imgui.TextColored(readOnlyColor, fmt.Sprintf("map[%d items]", val.Len()))

	case val.CanInterface():
		imgui.TextColored(readOnlyColor, fmt.Sprintf("%v", val.Interface()))

	default:
		imgui.TextColored(readOnlyColor, "<"+val.Type().String()+">")
	}
}

// editPlanar edits an {X, Y} pair side by side.
func editPlanar(label string, val reflect.Value) {
	x, y := val.Field(0), val.Field(1)
	imgui.Text("x")
	imgui.SameLine()
	editScalar(label+".x", x)
	imgui.SameLine()
	imgui.Text("y")
	imgui.SameLine()
	editScalar(label+".y", y)
}

func editScalar(label string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.SetNextItemWidth(120)
		if imgui.InputInt(label, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.SetNextItemWidth(120)
		if imgui.InputInt(label, &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.SetNextItemWidth(120)
		if imgui.InputFloat(label, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(label, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}
	}
}
