package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
)

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedKinds: make(map[ecs.Kind]bool),
	}
}

// MatchEntities returns the entities holding every kind in kinds, walking the
// smallest store and probing the rest. An empty kinds or a kind with no store
// matches nothing.
func MatchEntities(c *ecs.Catalog, kinds []ecs.Kind) []ecs.Entity {
	if len(kinds) == 0 {
		return nil
	}

	stores := make([]ecs.AnyStore, 0, len(kinds))
	for _, kind := range kinds {
		s, ok := c.StoreOf(kind)
		if !ok {
			return nil
		}
		stores = append(stores, s)
	}
	slices.SortFunc(stores, func(a, b ecs.AnyStore) int {
		return a.Len() - b.Len()
	})

	var matches []ecs.Entity
	for e := range stores[0].Entities() {
		if !slices.ContainsFunc(stores[1:], func(s ecs.AnyStore) bool { return !s.Contains(e) }) {
			matches = append(matches, e)
		}
	}
	return matches
}

func (qd *QueryDebuggerComponent) Render(c *ecs.Catalog) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Kinds:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedKinds)
	}

	var selected []ecs.Kind
	c.ForAllStores(func(s ecs.AnyStore) bool {
		kind := s.Kind()
		checked := qd.selectedKinds[kind]
		if imgui.Checkbox(kind.String(), &checked) {
			if checked {
				qd.selectedKinds[kind] = true
			} else {
				delete(qd.selectedKinds, kind)
			}
		}
		if qd.selectedKinds[kind] {
			selected = append(selected, kind)
		}
		return true
	})

	imgui.Separator()

	if len(selected) == 0 {
		imgui.Text("No component kinds selected")
		imgui.End()
		return
	}

	matches := MatchEntities(c, selected)
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Matches") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryMatchTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for _, e := range matches {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", e))

				imgui.TableSetColumnIndex(1)
				kinds := c.KindsOf(e)
				names := make([]string, len(kinds))
				for i, k := range kinds {
					names[i] = k.String()
				}
				imgui.Text(strings.Join(names, ", "))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
