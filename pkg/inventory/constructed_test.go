package inventory

import (
	"testing"

	"github.com/jimyag/one-inventory/pkg/logger"
)

func TestSetCompositeVars(t *testing.T) {
	inv := NewInventory()
	inv.AddHost("web1")

	constructed := NewConstructed(
		map[string]string{
			"ansible_host": "name",
			"state_upper":  "state|upper",
		},
		nil, nil, false, logger.Discard(),
	)

	vars := map[string]any{
		"name":  "web1",
		"state": "active",
	}
	if err := constructed.Apply(inv, "web1", vars); err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}

	host := inv.Hosts["web1"]
	if host.Vars["ansible_host"] != "web1" {
		t.Errorf("ansible_host = %v, want web1", host.Vars["ansible_host"])
	}
	if host.Vars["state_upper"] != "ACTIVE" {
		t.Errorf("state_upper = %v, want ACTIVE", host.Vars["state_upper"])
	}
	// compose 产生的变量对后续表达式可见
	if vars["state_upper"] != "ACTIVE" {
		t.Errorf("vars not updated with composed value: %v", vars["state_upper"])
	}
}

func TestComposedGroups(t *testing.T) {
	tests := []struct {
		name       string
		groups     map[string]string
		vars       map[string]any
		wantMember bool
	}{
		{
			name:       "condition true",
			groups:     map[string]string{"running": `state == "active"`},
			vars:       map[string]any{"state": "active"},
			wantMember: true,
		},
		{
			name:       "condition false",
			groups:     map[string]string{"running": `state == "active"`},
			vars:       map[string]any{"state": "poweroff"},
			wantMember: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInventory()
			inv.AddHost("web1")

			constructed := NewConstructed(nil, tt.groups, nil, false, logger.Discard())
			if err := constructed.Apply(inv, "web1", tt.vars); err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}

			group, exists := inv.Groups["running"]
			isMember := exists && contains(group.Hosts, "web1")
			if isMember != tt.wantMember {
				t.Errorf("membership = %v, want %v", isMember, tt.wantMember)
			}
		})
	}
}

func TestKeyedGroups(t *testing.T) {
	tests := []struct {
		name string
		kg   KeyedGroup
		vars map[string]any
		want string
	}{
		{
			name: "prefix with default separator",
			kg:   KeyedGroup{Key: "state", Prefix: "one"},
			vars: map[string]any{"state": "active"},
			want: "one_active",
		},
		{
			name: "custom separator",
			kg:   KeyedGroup{Key: "state", Prefix: "one", Separator: "－－"},
			vars: map[string]any{"state": "active"},
			want: "one__active", // 非法字符被替换成下划线
		},
		{
			name: "no prefix",
			kg:   KeyedGroup{Key: "state"},
			vars: map[string]any{"state": "active"},
			want: "active",
		},
		{
			name: "default value for empty result",
			kg:   KeyedGroup{Key: "deploy_id", Prefix: "deploy", DefaultValue: "none"},
			vars: map[string]any{"deploy_id": ""},
			want: "deploy_none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInventory()
			inv.AddHost("web1")

			constructed := NewConstructed(nil, nil, []KeyedGroup{tt.kg}, false, logger.Discard())
			if err := constructed.Apply(inv, "web1", tt.vars); err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}

			group, exists := inv.Groups[tt.want]
			if !exists || !contains(group.Hosts, "web1") {
				t.Errorf("expected web1 in group %q, groups = %v", tt.want, groupNames(inv))
			}
		})
	}
}

func TestKeyedGroupEmptyValueSkipped(t *testing.T) {
	inv := NewInventory()
	inv.AddHost("web1")

	constructed := NewConstructed(nil, nil, []KeyedGroup{{Key: "deploy_id", Prefix: "deploy"}}, false, logger.Discard())
	if err := constructed.Apply(inv, "web1", map[string]any{"deploy_id": ""}); err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}

	// 没有 default_value，空值不产生组
	if len(inv.Groups) != 2 {
		t.Errorf("expected only the builtin groups, got %v", groupNames(inv))
	}
}

func TestStrictMode(t *testing.T) {
	vars := map[string]any{"state": "active"}
	broken := map[string]string{"oops": `state |`} // 编译不过的表达式

	t.Run("strict aborts", func(t *testing.T) {
		inv := NewInventory()
		inv.AddHost("web1")

		constructed := NewConstructed(broken, nil, nil, true, logger.Discard())
		if err := constructed.Apply(inv, "web1", vars); err == nil {
			t.Error("expected error in strict mode")
		}
	})

	t.Run("non-strict warns and continues", func(t *testing.T) {
		inv := NewInventory()
		inv.AddHost("web1")

		constructed := NewConstructed(broken, map[string]string{"running": `state == "active"`}, nil, false, logger.Discard())
		if err := constructed.Apply(inv, "web1", vars); err != nil {
			t.Fatalf("Apply() unexpected error: %v", err)
		}
		// 后续规则仍然执行
		if group, exists := inv.Groups["running"]; !exists || !contains(group.Hosts, "web1") {
			t.Error("expected web1 in group running after a non-strict failure")
		}
	})
}

func groupNames(inv *Inventory) []string {
	names := make([]string, 0, len(inv.Groups))
	for name := range inv.Groups {
		names = append(names, name)
	}
	return names
}
