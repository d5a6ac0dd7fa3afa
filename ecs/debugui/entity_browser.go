package debugui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID    ecs.Entity
	Kinds []ecs.Kind
	Names []string
}

// HasKind reports whether the entity held kind when the row was collected.
func (info EntityInfo) HasKind(kind ecs.Kind) bool {
	return slices.Contains(info.Kinds, kind)
}

// CollectEntities lists every entity holding at least one component, by id.
func CollectEntities(c *ecs.Catalog) []EntityInfo {
	seen := make(map[ecs.Entity]bool)
	var ids []ecs.Entity
	c.ForAllStores(func(s ecs.AnyStore) bool {
		for e := range s.Entities() {
			if !seen[e] {
				seen[e] = true
				ids = append(ids, e)
			}
		}
		return true
	})
	slices.Sort(ids)

	infos := make([]EntityInfo, 0, len(ids))
	for _, e := range ids {
		kinds := c.KindsOf(e)
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		infos = append(infos, EntityInfo{ID: e, Kinds: kinds, Names: names})
	}
	return infos
}

type EntityBrowserCache struct {
	entities      []EntityInfo
	lastStores    int
	lastTotal     int
	lastIssued    uint64
	sortColumn    int
	sortAscending bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache: &EntityBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(c *ecs.Catalog) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(c)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterKind = nil
	}
	if eb.filterKind != nil {
		imgui.Text(fmt.Sprintf("Holding: %s", eb.filterKind.String()))
	}

	filtered := eb.filteredEntities()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.cache.sortColumn = int(spec.ColumnIndex())
			eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			eb.sortEntities()
			sortSpecs.SetSpecsDirty(false)
			filtered = eb.filteredEntities()
		}

		start := eb.currentPage * eb.maxEntitiesPerPage
		end := min(start+eb.maxEntitiesPerPage, len(filtered))

		for i := start; i < end; i++ {
			entity := filtered[i]
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID), eb.selectedEntity == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntity = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.Names, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", len(entity.Kinds)))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxEntitiesPerPage {
		totalPages := (len(filtered) + eb.maxEntitiesPerPage - 1) / eb.maxEntitiesPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}

// The cache is keyed on coarse catalog counters; a replace-in-place does not
// change the set of rows so it does not need a rebuild.
func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(c *ecs.Catalog) {
	stats := c.Stats()
	if eb.cache.entities != nil &&
		eb.cache.lastStores == stats.StoreCount &&
		eb.cache.lastTotal == stats.TotalComponents &&
		eb.cache.lastIssued == stats.IssuedEntities {
		return
	}

	eb.cache.lastStores = stats.StoreCount
	eb.cache.lastTotal = stats.TotalComponents
	eb.cache.lastIssued = stats.IssuedEntities
	eb.cache.entities = CollectEntities(c)
	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	slices.SortStableFunc(eb.cache.entities, func(a, b EntityInfo) int {
		var cmp int
		switch eb.cache.sortColumn {
		case 1:
			cmp = strings.Compare(strings.Join(a.Names, ","), strings.Join(b.Names, ","))
		case 2:
			cmp = len(a.Kinds) - len(b.Kinds)
		default:
			if a.ID < b.ID {
				cmp = -1
			} else if a.ID > b.ID {
				cmp = 1
			}
		}
		if !eb.cache.sortAscending {
			return -cmp
		}
		return cmp
	})
}

func (eb *EntityBrowserComponent) filteredEntities() []EntityInfo {
	return FilterEntities(eb.cache.entities, eb.filterText, eb.filterKind)
}

// FilterEntities keeps rows whose id or component names contain text
// (case-insensitive) and, when kind is set, that hold kind.
func FilterEntities(entities []EntityInfo, text string, kind *ecs.Kind) []EntityInfo {
	if text == "" && kind == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	lower := strings.ToLower(text)

	for _, entity := range entities {
		if kind != nil && !entity.HasKind(*kind) {
			continue
		}

		if text != "" {
			id := fmt.Sprintf("%d", entity.ID)
			names := strings.ToLower(strings.Join(entity.Names, " "))
			if !strings.Contains(id, lower) && !strings.Contains(names, lower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

// FilterKind restricts the browser to entities holding kind.
func (eb *EntityBrowserComponent) FilterKind(kind ecs.Kind) {
	if eb.filterKind == nil || *eb.filterKind != kind {
		eb.currentPage = 0
	}
	eb.filterKind = &kind
}

func (eb *EntityBrowserComponent) SelectedEntity() ecs.Entity {
	return eb.selectedEntity
}
