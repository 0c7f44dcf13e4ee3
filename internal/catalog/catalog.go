// Package catalog holds the shop's pick lists: order stages, construction
// categories with their workers, and purchase categories with their vendors.
package catalog

import "curtainledger/internal/model"

// Other is the free-entry choice present in most lists.
const Other = "其他"

// DefaultLaborCategory marks purchase rows that record wage payouts to workers.
const DefaultLaborCategory = "師傅工資"

// Group is a named list, e.g. a construction category and its workers.
type Group struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Catalog is served to the form layer.
type Catalog struct {
	Statuses      []string `json:"statuses"`
	WorkerGroups  []Group  `json:"worker_groups"`
	VendorGroups  []Group  `json:"vendor_groups"`
	LaborCategory string   `json:"labor_category"`
}

// Default returns the shop's lists.
func Default(laborCategory string) Catalog {
	if laborCategory == "" {
		laborCategory = DefaultLaborCategory
	}
	return Catalog{
		Statuses: []string{
			model.StatusReceived,
			model.StatusPreparing,
			model.StatusInProgress,
			model.StatusCompleted,
			model.StatusClosed,
		},
		WorkerGroups: []Group{
			{Name: "窗簾類", Members: []string{"小淯", "小林", "承暘", "袁大哥", Other}},
			{Name: "壁紙類", Members: []string{"期", Other}},
			{Name: "地磚地毯類", Members: []string{"永鑫", "祥", "郭師傅", Other}},
			{Name: "玻璃紙類", Members: []string{"宏名"}},
			{Name: "其他施工", Members: []string{Other}},
		},
		VendorGroups: []Group{
			{Name: "窗簾布類", Members: []string{"大晉", "創世紀", "可愛", "程祥", "聚合", "萊茵", "海淇", "凱薩", "德克力", "施小姐"}},
			{Name: "捲簾五金類", Members: []string{"彩樺", "和發", "大晉", "萊茵", "可愛", "高仕", "大瀚", "將元", "宏易", "莊小姐"}},
			{Name: "壁紙類", Members: []string{"竑美", "優格", "全球", "高仕"}},
			{Name: "地磚地毯類", Members: []string{"旺宏", "皇家", "三凱", "富銘"}},
			{Name: "木地板", Members: []string{Other}},
			{Name: "表布代工", Members: []string{"禾益"}},
			{Name: laborCategory, Members: []string{"小淯", "小林", "承暘", "袁大哥", "永鑫", "祥", "郭師傅", "宏名", Other}},
		},
		LaborCategory: laborCategory,
	}
}

// DefaultStatus is assigned to newly created orders.
func (c Catalog) DefaultStatus() string {
	if len(c.Statuses) == 0 {
		return model.StatusReceived
	}
	return c.Statuses[0]
}

// IsLabor reports whether a purchase category records wage payouts.
func (c Catalog) IsLabor(category string) bool {
	return category == c.LaborCategory
}
