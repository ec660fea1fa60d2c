package cards

import "strings"

type FilterOptions struct {
	Classes         []string `json:"classes"`
	Sets            []string `json:"sets"`
	Types           []string `json:"types"`
	Rarities        []string `json:"rarities"`
	Costs           []int    `json:"costs"`
	FreeWords       string   `json:"free_words"`
	CollectibleOnly bool     `json:"collectible_only"`
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func Filter(cards []Card, opt FilterOptions) []Card {
	var out []Card
	for _, c := range cards {
		if opt.CollectibleOnly && !c.Collectible {
			continue
		}
		if len(opt.Classes) > 0 && !containsFold(opt.Classes, c.Class) {
			continue
		}
		if len(opt.Sets) > 0 && !containsFold(opt.Sets, c.Set) {
			continue
		}
		if len(opt.Types) > 0 && !containsFold(opt.Types, c.Type) {
			continue
		}
		if len(opt.Rarities) > 0 && !containsFold(opt.Rarities, c.Rarity) {
			continue
		}
		if len(opt.Costs) > 0 {
			matched := false
			for _, co := range opt.Costs {
				if c.Cost == co {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				k = strings.ToLower(k)
				if !strings.Contains(strings.ToLower(c.Name), k) &&
					!strings.Contains(strings.ToLower(c.Text), k) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
