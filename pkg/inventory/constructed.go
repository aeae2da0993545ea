package inventory

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/jimyag/one-inventory/pkg/logger"
)

// KeyedGroup 描述一条按变量值分组的规则
type KeyedGroup struct {
	// Key 是求值后作为组名的表达式
	Key string `yaml:"key"`
	// Prefix 是组名前缀
	Prefix string `yaml:"prefix"`
	// Separator 是前缀与值之间的分隔符，默认 "_"
	Separator string `yaml:"separator"`
	// DefaultValue 在表达式求值为空时代替空值
	DefaultValue string `yaml:"default_value"`
}

// Constructed 对每个主机求值 compose / groups / keyed_groups 规则。
// 表达式是 Jinja2 风格，用 pongo2 求值，上下文是主机变量。
// Strict 决定求值失败是中止还是只告警。
type Constructed struct {
	Compose     map[string]string
	Groups      map[string]string
	KeyedGroups []KeyedGroup
	Strict      bool

	log *logger.Logger
}

// NewConstructed 创建规则求值器
func NewConstructed(compose, groups map[string]string, keyedGroups []KeyedGroup, strict bool, log *logger.Logger) *Constructed {
	return &Constructed{
		Compose:     compose,
		Groups:      groups,
		KeyedGroups: keyedGroups,
		Strict:      strict,
		log:         log,
	}
}

// Apply 对单个主机套用全部规则。
// vars 是该主机当前的变量集，compose 产生的新变量会依次加入，
// 后面的表达式能引用前面的结果。
func (c *Constructed) Apply(inv *Inventory, hostname string, vars map[string]any) error {
	if err := c.setCompositeVars(inv, hostname, vars); err != nil {
		return err
	}
	if err := c.addComposedGroups(inv, hostname, vars); err != nil {
		return err
	}
	return c.addKeyedGroups(inv, hostname, vars)
}

// setCompositeVars 求值 compose 规则并设置主机变量
func (c *Constructed) setCompositeVars(inv *Inventory, hostname string, vars map[string]any) error {
	for key, expr := range c.Compose {
		value, err := evalExpression(expr, vars)
		if err != nil {
			if c.Strict {
				return fmt.Errorf("could not set %s for host %s: %w", key, hostname, err)
			}
			c.log.Warnf("could not set %s for host %s: %v", key, hostname, err)
			continue
		}
		inv.SetVariable(hostname, key, value)
		vars[key] = value
	}
	return nil
}

// addComposedGroups 求值 groups 条件并把主机加入成立的组
func (c *Constructed) addComposedGroups(inv *Inventory, hostname string, vars map[string]any) error {
	for groupName, expr := range c.Groups {
		ok, err := evalCondition(expr, vars)
		if err != nil {
			if c.Strict {
				return fmt.Errorf("could not add host %s to group %s: %w", hostname, groupName, err)
			}
			c.log.Warnf("could not add host %s to group %s: %v", hostname, groupName, err)
			continue
		}
		if ok {
			inv.AddHostToGroup(hostname, sanitizeGroupName(groupName))
		}
	}
	return nil
}

// addKeyedGroups 按 keyed_groups 规则生成组名并加入主机
func (c *Constructed) addKeyedGroups(inv *Inventory, hostname string, vars map[string]any) error {
	for _, kg := range c.KeyedGroups {
		if kg.Key == "" {
			continue
		}

		value, err := evalExpression(kg.Key, vars)
		if err != nil {
			if c.Strict {
				return fmt.Errorf("could not generate group for host %s: %w", hostname, err)
			}
			c.log.Warnf("could not generate group for host %s: %v", hostname, err)
			continue
		}
		if value == "" {
			if kg.DefaultValue == "" {
				c.log.Vf(2, "skipping empty keyed group for host %s", hostname)
				continue
			}
			value = kg.DefaultValue
		}

		name := value
		if kg.Prefix != "" {
			separator := kg.Separator
			if separator == "" {
				separator = "_"
			}
			name = kg.Prefix + separator + value
		}
		inv.AddHostToGroup(hostname, sanitizeGroupName(name))
	}
	return nil
}

// evalExpression 求值单个表达式，返回渲染后的字符串
func evalExpression(expr string, ctx map[string]any) (string, error) {
	tpl, err := pongo2.FromString("{{ " + expr + " }}")
	if err != nil {
		return "", fmt.Errorf("failed to compile expression %q: %w", expr, err)
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate expression %q: %w", expr, err)
	}
	return strings.TrimSpace(out), nil
}

// evalCondition 求值布尔条件。
// 条件本身不带 {{ }}，包装成 if 模板来求值。
func evalCondition(expr string, ctx map[string]any) (bool, error) {
	tpl, err := pongo2.FromString(fmt.Sprintf("{%% if %s %%}true{%% else %%}false{%% endif %%}", expr))
	if err != nil {
		return false, fmt.Errorf("failed to compile condition %q: %w", expr, err)
	}
	out, err := tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate condition %q: %w", expr, err)
	}
	return strings.TrimSpace(out) == "true", nil
}

// sanitizeGroupName 把组名中不合法的字符替换为下划线
func sanitizeGroupName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
