package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jimyag/one-inventory/pkg/errors"
	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/one"
)

// Builder 把远端返回的原始 VM 描述构建为规范化的 Record。
// 构建过程中会发起额外的远端查询（模板信息、每块网卡的网络信息），
// 这些查询没有批量化，成本是 O(VM 数 × NIC 数)。
type Builder struct {
	client one.Client
	log    *logger.Logger
}

// NewBuilder 创建 Record 构建器
func NewBuilder(client one.Client, log *logger.Logger) *Builder {
	return &Builder{client: client, log: log}
}

// BuildAll 拉取整个 VM 池并构建全部记录。
// 任何一台 VM 构建失败都会中止整个查询，不产出部分结果。
func (b *Builder) BuildAll() ([]Record, error) {
	raws, err := b.client.ListVMs()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(raws))
	for _, raw := range raws {
		rec, err := b.Build(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Build 构建单台 VM 的记录
func (b *Builder) Build(raw one.Attributes) (Record, error) {
	stateCode, _ := raw.Int("STATE")
	state, err := ParseState(stateCode)
	if err != nil {
		return Record{}, err
	}

	lcmCode, _ := raw.Int("LCM_STATE")
	lcmState, err := ParseLCMState(lcmCode)
	if err != nil {
		return Record{}, err
	}

	id, _ := raw.Int("ID")
	name, _ := raw.String("NAME")
	deployID, _ := raw.String("DEPLOY_ID")
	stime, _ := raw.Int("STIME")

	rec := Record{
		ID:                 id,
		Name:               name,
		State:              state.String(),
		LCMState:           lcmState.String(),
		DeployID:           deployID,
		StartTimestamp:     stime,
		NIC:                []map[string]string{},
		NetworkIDDomainMap: map[string]string{},
	}

	if template, ok := raw.Child("TEMPLATE"); ok {
		if templateID, ok := template.Int("TEMPLATE_ID"); ok {
			if err := b.resolveTemplate(&rec, templateID); err != nil {
				return Record{}, err
			}
		}

		for _, nic := range template.List("NIC") {
			rec.NIC = append(rec.NIC, Normalize(nic))

			networkID, ok := nic.String("NETWORK_ID")
			if !ok {
				continue
			}
			domain, found, err := domainForNetwork(b.client, networkID, b.log)
			if err != nil {
				return Record{}, err
			}
			if found {
				rec.NetworkIDDomainMap[networkID] = domain
			}
		}
	}

	if userTemplate, ok := raw.Child("USER_TEMPLATE"); ok {
		rec.UserAttributes = Normalize(userTemplate)
	}

	return rec, nil
}

// resolveTemplate 查询模板名称。模板已被删除不是错误，
// 记录的 template/template_id 字段一起缺省；其他远端错误中止整个查询。
func (b *Builder) resolveTemplate(rec *Record, templateID int) error {
	info, err := b.client.GetTemplate(templateID)
	if errors.IsNotFound(err) {
		b.log.Vf(3, "VM %s template ID %d doesn't exist, not retrieving it", rec.Name, templateID)
		return nil
	}
	if err != nil {
		return err
	}

	name, _ := info.String("NAME")
	rec.TemplateID = &templateID
	rec.Template = &name
	return nil
}

// domainForNetwork 查询虚拟网络声明的 DNS 域名后缀，
// 末尾的分隔符会被去掉。网络不存在或没有声明域名时 found 为 false。
func domainForNetwork(client one.Client, networkID string, log *logger.Logger) (domain string, found bool, err error) {
	id, err := strconv.Atoi(networkID)
	if err != nil {
		return "", false, fmt.Errorf("invalid network id %q: %w", networkID, err)
	}

	info, err := client.GetNetwork(id)
	if errors.IsNotFound(err) {
		log.Vf(3, "virtual network %s doesn't exist, not retrieving its domain", networkID)
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	template, ok := info.Child("TEMPLATE")
	if !ok {
		return "", false, nil
	}
	domain, ok = template.String("DOMAIN")
	if !ok {
		return "", false, nil
	}
	return strings.TrimSuffix(domain, "."), true, nil
}
