package record

import (
	"strings"

	"github.com/jimyag/one-inventory/pkg/errors"
	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/one"
)

// 主机名策略
const (
	// PolicyFQDN 用 VM 名加上第一块网卡所在网络的域名后缀
	PolicyFQDN = "fqdn"
	// PolicyName 只用 VM 名
	PolicyName = "name"
)

// Resolver 根据策略推导记录的 inventory 主机名
type Resolver struct {
	client one.Client
	policy string
	log    *logger.Logger
}

// NewResolver 创建主机名解析器
func NewResolver(client one.Client, policy string, log *logger.Logger) *Resolver {
	return &Resolver{client: client, policy: policy, log: log}
}

// Resolve 返回记录的主机名。
// 没有任何网卡的记录无法做基于网络的解析，无论什么策略都回退到 VM 名；
// 这样不会静默丢掉已发现的 VM。
func (r *Resolver) Resolve(rec Record) (string, error) {
	if len(rec.NIC) == 0 {
		r.log.Vf(1, "VM %s doesn't have any NICs attached to it, using VM name", rec.Name)
		return rec.Name, nil
	}

	switch r.policy {
	case PolicyName:
		return rec.Name, nil
	case PolicyFQDN:
		networkID := rec.NIC[0]["network_id"]
		if networkID == "" {
			r.log.Vf(4, "VM %s first NIC doesn't reference a network, using VM name", rec.Name)
			return rec.Name, nil
		}

		domain, found := rec.NetworkIDDomainMap[networkID]
		if !found {
			var err error
			domain, found, err = domainForNetwork(r.client, networkID, r.log)
			if err != nil {
				return "", err
			}
		}
		if !found {
			r.log.Vf(4, "VM %s first NIC doesn't have a domain configured, using VM name", rec.Name)
			return rec.Name, nil
		}
		return rec.Name + "." + strings.TrimSuffix(domain, "."), nil
	default:
		return "", errors.NewInvalidOption("one_hostname_preference", r.policy)
	}
}
