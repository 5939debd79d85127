package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pspecs/ecs"
)

func NewComponentInspector() ComponentInspector {
	return ComponentInspector{}
}

func (ci *ComponentInspector) Render(world *ecs.World, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == ecs.InvalidEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !world.IsAlive(ci.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Slot %d gen %d is no longer alive", ci.selectedEntityId.Index(), ci.selectedEntityId.Generation()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Slot: %d", ci.selectedEntityId.Index()))
	imgui.Text(fmt.Sprintf("Generation: %d", ci.selectedEntityId.Generation()))
	imgui.Separator()

	for _, kind := range world.Mask(ci.selectedEntityId).Kinds() {
		component := world.GetComponent(ci.selectedEntityId, kind)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(kind.String()) {
			ci.renderComponent(kind.String(), component)
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspector) renderComponent(prefix string, component any) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	for _, field := range editableFields(val.Type()) {
		ci.renderField(prefix+"."+field.Name, field.Name, val.Field(field.Index))
	}
}

// renderField draws an editor for one field. id keeps ImGui labels unique
// across components sharing field names.
func (ci *ComponentInspector) renderField(id, name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		label(name)
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) {
			setInt(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		label(name)
		imgui.SetNextItemWidth(150)
		if imgui.InputInt("##"+id, &v) && v >= 0 {
			setUint(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		label(name)
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##"+id, &v) {
			setFloat(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+"##"+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Array:
		if imgui.TreeNodeStr(name + "##" + id) {
			for i := 0; i < val.Len(); i++ {
				ci.renderField(fmt.Sprintf("%s[%d]", id, i), axisName(i, val.Len()), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name + "##" + id) {
			for _, nf := range editableFields(val.Type()) {
				ci.renderField(id+"."+nf.Name, nf.Name, val.Field(nf.Index))
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func label(name string) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
}

// axisName labels vector elements X, Y, Z, W and other arrays by index.
func axisName(i, n int) string {
	if n <= 4 {
		return string("XYZW"[i])
	}
	return fmt.Sprintf("[%d]", i)
}

func setInt(field reflect.Value, value int64) bool {
	if !field.CanSet() || field.OverflowInt(value) {
		return false
	}
	field.SetInt(value)
	return true
}

func setUint(field reflect.Value, value uint64) bool {
	if !field.CanSet() || field.OverflowUint(value) {
		return false
	}
	field.SetUint(value)
	return true
}

func setFloat(field reflect.Value, value float64) bool {
	if !field.CanSet() || field.OverflowFloat(value) {
		return false
	}
	field.SetFloat(value)
	return true
}
