package debugui

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
)

func NewStoreViewerComponent() StoreViewerComponent {
	return StoreViewerComponent{
		sortColumn:    1,
		sortAscending: false,
	}
}

// Render lists every store with its occupancy. Clicking a row returns the
// store's kind so the entity browser can filter on it; otherwise nil.
func (sv *StoreViewerComponent) Render(c *ecs.Catalog) *ecs.Kind {
	if !imgui.BeginV("Store Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	stats := c.Stats()
	imgui.Text(fmt.Sprintf("Total Stores: %d", stats.StoreCount))
	imgui.Text(fmt.Sprintf("Total Components: %d", stats.TotalComponents))
	imgui.Separator()

	kinds := make(map[string]ecs.Kind, stats.StoreCount)
	c.ForAllStores(func(s ecs.AnyStore) bool {
		kinds[s.Kind().String()] = s.Kind()
		return true
	})

	var clicked *ecs.Kind

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StoreTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Live")
		imgui.TableSetupColumn("Occupancy")
		imgui.TableSetupColumn("Replaced")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		rows := SortStores(stats.Stores, sv.sortColumn, sv.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			kind, known := kinds[row.Kind]
			isSelected := known && sv.selectedKind != nil && *sv.selectedKind == kind
			if imgui.SelectableBoolV(row.Kind, isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) && known {
				sv.selectedKind = &kind
				clicked = &kind
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Len))

			imgui.TableNextColumn()
			sv.renderOccupancyBar(Occupancy(row))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Replacements))
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

// Occupancy is the fraction of a store's slots holding a live component.
func Occupancy(s ecs.StoreStats) float32 {
	if s.Slots == 0 {
		return 0
	}
	return float32(s.Len) / float32(s.Slots)
}

// SortStores returns a sorted copy of stores. Columns are kind, live count,
// occupancy and replacements.
func SortStores(stores []ecs.StoreStats, column int, ascending bool) []ecs.StoreStats {
	rows := slices.Clone(stores)
	slices.SortStableFunc(rows, func(a, b ecs.StoreStats) int {
		var c int
		switch column {
		case 0:
			c = cmp.Compare(a.Kind, b.Kind)
		case 2:
			c = cmp.Compare(Occupancy(a), Occupancy(b))
		case 3:
			c = cmp.Compare(a.Replacements, b.Replacements)
		default:
			c = cmp.Compare(a.Len, b.Len)
		}
		if !ascending {
			return -c
		}
		return c
	})
	return rows
}

func (sv *StoreViewerComponent) renderOccupancyBar(fraction float32) {
	imgui.Text(fmt.Sprintf("%3.0f%%", fraction*100))
	if fraction <= 0 {
		return
	}

	imgui.SameLine()
	drawList := imgui.WindowDrawList()
	pos := imgui.CursorScreenPos()
	color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
	drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+fraction*80.0, pos.Y+10), color)
}
