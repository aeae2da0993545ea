package inventory

// Host 表示一个主机
type Host struct {
	Name   string         // Inventory hostname
	Vars   map[string]any // 主机变量
	Groups []string       // 所属组名
}

// Group 表示一个主机组
type Group struct {
	Name     string
	Hosts    []string // 主机名列表
	Children []string // 子组名列表
	Vars     map[string]any
}

// Inventory 表示整个 inventory
type Inventory struct {
	Hosts  map[string]*Host
	Groups map[string]*Group
}

// NewInventory 创建一个新的 Inventory
func NewInventory() *Inventory {
	inv := &Inventory{
		Hosts:  make(map[string]*Host),
		Groups: make(map[string]*Group),
	}

	// 创建默认组
	inv.Groups["all"] = &Group{
		Name:     "all",
		Hosts:    []string{},
		Children: []string{"ungrouped"},
		Vars:     make(map[string]any),
	}

	inv.Groups["ungrouped"] = &Group{
		Name:     "ungrouped",
		Hosts:    []string{},
		Children: []string{},
		Vars:     make(map[string]any),
	}

	return inv
}

// AddHost 注册一个主机并加入 all 组。
// 同名主机按名字覆盖式合并（last-write-wins），不做去重。
func (inv *Inventory) AddHost(name string) *Host {
	host, exists := inv.Hosts[name]
	if !exists {
		host = &Host{
			Name:   name,
			Vars:   make(map[string]any),
			Groups: []string{},
		}
		inv.Hosts[name] = host
	}

	all := inv.Groups["all"]
	if !contains(all.Hosts, name) {
		all.Hosts = append(all.Hosts, name)
	}

	return host
}

// SetVariable 设置主机变量，主机不存在时自动注册
func (inv *Inventory) SetVariable(hostname, key string, value any) {
	host := inv.AddHost(hostname)
	host.Vars[key] = value
}

// AddGroup 确保组存在并返回它
func (inv *Inventory) AddGroup(name string) *Group {
	group, exists := inv.Groups[name]
	if !exists {
		group = &Group{
			Name:     name,
			Hosts:    []string{},
			Children: []string{},
			Vars:     make(map[string]any),
		}
		inv.Groups[name] = group
	}
	return group
}

// AddHostToGroup 把主机加入组，组和主机不存在时自动创建
func (inv *Inventory) AddHostToGroup(hostname, groupName string) {
	host := inv.AddHost(hostname)
	group := inv.AddGroup(groupName)

	if !contains(group.Hosts, hostname) {
		group.Hosts = append(group.Hosts, hostname)
	}
	if !contains(host.Groups, groupName) {
		host.Groups = append(host.Groups, groupName)
	}
}

// contains 检查切片是否包含元素
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
