package record

// Record 是一台已发现虚拟机的规范化记录。
// 记录在每次慢路径查询时全新构建，构建后不再修改，
// 原样序列化进缓存；新的查询结果整体替换缓存中的旧记录集。
type Record struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	State          string `json:"state"`
	LCMState       string `json:"lcm_state"`
	DeployID       string `json:"deploy_id"`
	StartTimestamp int    `json:"start_timestamp"`

	// TemplateID/Template 只在实例化来源的模板仍然存在时出现；
	// 模板被删除不是错误，两个字段一起缺省
	TemplateID *int    `json:"template_id,omitempty"`
	Template   *string `json:"template,omitempty"`

	// NIC 顺序与远端 API 报告的顺序一致，第一块网卡决定主机名
	NIC []map[string]string `json:"nic"`

	// NetworkIDDomainMap 的 key 是 NIC 引用的网络 id 的子集，
	// 只包含声明了 DNS 域名后缀的网络
	NetworkIDDomainMap map[string]string `json:"network_id_domain_map"`

	UserAttributes map[string]string `json:"user_attributes,omitempty"`
}

// HostVars 把记录的所有字段展开为主机变量，变量名与字段名一致。
// 缺省的可选字段不产生变量。
func (r Record) HostVars() map[string]any {
	vars := map[string]any{
		"id":                    r.ID,
		"name":                  r.Name,
		"state":                 r.State,
		"lcm_state":             r.LCMState,
		"deploy_id":             r.DeployID,
		"start_timestamp":       r.StartTimestamp,
		"nic":                   r.NIC,
		"network_id_domain_map": r.NetworkIDDomainMap,
	}

	if r.TemplateID != nil {
		vars["template_id"] = *r.TemplateID
	}
	if r.Template != nil {
		vars["template"] = *r.Template
	}
	if r.UserAttributes != nil {
		vars["user_attributes"] = r.UserAttributes
	}

	return vars
}
