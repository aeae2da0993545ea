package inventory

import "sort"

// ToList 导出 ansible-inventory --list 形状的结构：
// _meta.hostvars 包含每个主机的全部变量，其余顶层 key 是组。
func (inv *Inventory) ToList() map[string]any {
	out := make(map[string]any)

	hostvars := make(map[string]any, len(inv.Hosts))
	for name, host := range inv.Hosts {
		hostvars[name] = host.Vars
	}
	out["_meta"] = map[string]any{"hostvars": hostvars}

	for name, group := range inv.Groups {
		entry := make(map[string]any)

		if len(group.Hosts) > 0 {
			entry["hosts"] = sortedCopy(group.Hosts)
		}

		children := group.Children
		if name == "all" {
			// all 的 children 包含所有其他组
			children = make([]string, 0, len(inv.Groups)-1)
			for groupName := range inv.Groups {
				if groupName != "all" {
					children = append(children, groupName)
				}
			}
		}
		if len(children) > 0 {
			entry["children"] = sortedCopy(children)
		}

		if len(group.Vars) > 0 {
			entry["vars"] = group.Vars
		}

		out[name] = entry
	}

	return out
}

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
