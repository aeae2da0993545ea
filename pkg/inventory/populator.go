package inventory

import (
	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/record"
)

// Populator 把 VM 记录按顺序注册进 Inventory。
// 同一批记录重复 populate 得到相同的主机集合和变量值。
type Populator struct {
	resolver    *record.Resolver
	constructed *Constructed
	log         *logger.Logger
}

// NewPopulator 创建 Populator
func NewPopulator(resolver *record.Resolver, constructed *Constructed, log *logger.Logger) *Populator {
	return &Populator{
		resolver:    resolver,
		constructed: constructed,
		log:         log,
	}
}

// Populate 逐条处理记录：解析主机名、注册主机、
// 把记录的每个字段设为同名主机变量，最后套用 constructed 规则。
// 主机名解析失败或 strict 模式下的规则求值失败会中止整个流程。
func (p *Populator) Populate(inv *Inventory, records []record.Record) error {
	for _, rec := range records {
		hostname, err := p.resolver.Resolve(rec)
		if err != nil {
			return err
		}

		inv.AddHost(hostname)

		vars := rec.HostVars()
		for key, value := range vars {
			inv.SetVariable(hostname, key, value)
		}

		if p.constructed != nil {
			if err := p.constructed.Apply(inv, hostname, vars); err != nil {
				return err
			}
		}
	}
	return nil
}
