package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shmup/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

func NewEntityInspectorComponent(maxEntitiesPerPage int) EntityInspectorComponent {
	return EntityInspectorComponent{maxEntitiesPerPage: maxEntitiesPerPage}
}

// Render lists live entities, optionally restricted to one archetype, and shows the
// components of the selected one. Float fields can be edited in place.
func (ei *EntityInspectorComponent) Render(storage *ecs.Storage, archetypeFilter *uint32) {
	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Filter by component...", &ei.filterText, imgui.InputTextFlagsNone, nil)

	entities := filterEntities(collectEntities(storage), ei.filterText, archetypeFilter)
	pages := max(1, (len(entities)+ei.maxEntitiesPerPage-1)/ei.maxEntitiesPerPage)
	ei.currentPage = min(ei.currentPage, pages-1)

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", ei.currentPage+1, pages, len(entities)))
	imgui.SameLine()
	if imgui.Button("Prev") && ei.currentPage > 0 {
		ei.currentPage--
	}
	imgui.SameLine()
	if imgui.Button("Next") && ei.currentPage < pages-1 {
		ei.currentPage++
	}

	start := ei.currentPage * ei.maxEntitiesPerPage
	end := min(start+ei.maxEntitiesPerPage, len(entities))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 2, tableFlags, imgui.NewVec2(0, 200), 0) {
		imgui.TableSetupColumn("Entity ID")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, entity := range entities[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), ei.selectedEntityId == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ei.selectedEntityId = entity.ID
			}
			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	imgui.Separator()
	ei.renderSelected(storage)

	imgui.End()
}

func (ei *EntityInspectorComponent) renderSelected(storage *ecs.Storage) {
	if ei.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		return
	}
	if !storage.Exists(ei.selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d was deleted", ei.selectedEntityId))
		return
	}

	archetype := findArchetype(storage, ei.selectedEntityId.ArchetypeId())
	if archetype == nil {
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", ei.selectedEntityId))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(ei.selectedEntityId, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(compType.Name(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
}

func findArchetype(storage *ecs.Storage, id uint32) *ecs.Archetype {
	for _, archetype := range storage.Archetypes() {
		if archetype.ID() == id {
			return archetype
		}
	}
	return nil
}

func renderValue(name string, val reflect.Value) {
	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(name, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if val.NumField() == 0 {
			imgui.Text(name + ": {}")
			return
		}
		if imgui.TreeNodeStr(name) {
			for i := 0; i < val.NumField(); i++ {
				field := val.Type().Field(i)
				if !field.IsExported() {
					continue
				}
				renderValue(field.Name, val.Field(i))
			}
			imgui.TreePop()
		}

	case reflect.Array:
		// fixed-size vectors (mgl64.Vec2, Quat.V) edit element by element
		if imgui.TreeNodeStr(name) {
			for i := 0; i < val.Len(); i++ {
				renderValue(fmt.Sprintf("[%d]", i), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}

func collectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo
	for _, archetype := range storage.Archetypes() {
		componentTypes := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			componentTypes[i] = t.String()
		}

		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: componentTypes,
			})
		}
	}
	return entities
}

// filterEntities keeps entities of the given archetype (if any) whose id or component
// type names contain text, case-insensitively.
func filterEntities(entities []EntityInfo, text string, archetypeId *uint32) []EntityInfo {
	if text == "" && archetypeId == nil {
		return entities
	}

	needle := strings.ToLower(text)
	filtered := make([]EntityInfo, 0, len(entities))
	for _, entity := range entities {
		if archetypeId != nil && entity.ArchetypeID != *archetypeId {
			continue
		}
		if needle != "" &&
			!strings.Contains(fmt.Sprintf("%d", entity.ID), needle) &&
			!strings.Contains(strings.ToLower(strings.Join(entity.ComponentTypes, " ")), needle) {
			continue
		}
		filtered = append(filtered, entity)
	}
	return filtered
}
