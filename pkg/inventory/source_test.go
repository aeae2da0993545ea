package inventory

import (
	"testing"

	"github.com/jimyag/one-inventory/pkg/cache"
	"github.com/jimyag/one-inventory/pkg/errors"
	"github.com/jimyag/one-inventory/pkg/logger"
	"github.com/jimyag/one-inventory/pkg/one"
)

func rawActiveVM(id, name string) one.Attributes {
	return one.Attributes{
		"ID":        id,
		"NAME":      name,
		"STATE":     "3",
		"LCM_STATE": "3",
		"DEPLOY_ID": "one-" + id,
		"STIME":     "1700000000",
	}
}

func TestSourceSlowPathUpdatesCache(t *testing.T) {
	client := &stubClient{vms: []one.Attributes{rawActiveVM("1", "web1")}}
	store := cache.NewMemoryStore()
	mgr := cache.NewManager(store, logger.Discard())

	source := NewSource(client, mgr, SourceOptions{
		Cache:              true,
		HostnamePreference: "name",
	}, logger.Discard())

	path := "production.one.yml"
	inv, err := source.Parse(path, true)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if inv.Hosts["web1"] == nil {
		t.Fatalf("host web1 not found, hosts = %v", hostNames(inv))
	}
	if client.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1", client.listCalls)
	}

	// 读缓存未命中后查询结果要被持久化
	if _, ok := mgr.Get(cache.Key(path)); !ok {
		t.Error("query result was not written to the cache")
	}

	// 第二次运行命中缓存，不再查询远端
	if _, err := source.Parse(path, true); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if client.listCalls != 1 {
		t.Errorf("listCalls after cached run = %d, want 1", client.listCalls)
	}
}

func TestSourceForcedRefresh(t *testing.T) {
	client := &stubClient{vms: []one.Attributes{rawActiveVM("1", "web1")}}
	store := cache.NewMemoryStore()
	mgr := cache.NewManager(store, logger.Discard())

	source := NewSource(client, mgr, SourceOptions{
		Cache:              true,
		HostnamePreference: "name",
	}, logger.Discard())

	path := "production.one.yml"
	if _, err := source.Parse(path, true); err != nil {
		t.Fatal(err)
	}

	// 强制刷新绕过缓存读，但仍然写缓存
	client.vms = []one.Attributes{rawActiveVM("2", "web2")}
	if _, err := source.Parse(path, false); err != nil {
		t.Fatal(err)
	}
	if client.listCalls != 2 {
		t.Errorf("listCalls = %d, want 2", client.listCalls)
	}

	cached, ok := mgr.Get(cache.Key(path))
	if !ok || len(cached) != 1 || cached[0].Name != "web2" {
		t.Errorf("cache not replaced by refresh, got %v", cached)
	}
}

func TestSourceCacheDisabled(t *testing.T) {
	client := &stubClient{vms: []one.Attributes{rawActiveVM("1", "web1")}}

	source := NewSource(client, nil, SourceOptions{
		HostnamePreference: "name",
	}, logger.Discard())

	for i := 0; i < 2; i++ {
		if _, err := source.Parse("production.one.yml", true); err != nil {
			t.Fatal(err)
		}
	}
	if client.listCalls != 2 {
		t.Errorf("listCalls = %d, want 2 when caching is disabled", client.listCalls)
	}
}

func TestSourceRemoteFailureProducesNoHosts(t *testing.T) {
	client := &stubClient{listErr: errors.NewRemoteFailure("one.vmpool.infoextended", nil)}

	source := NewSource(client, nil, SourceOptions{
		HostnamePreference: "name",
	}, logger.Discard())

	inv, err := source.Parse("production.one.yml", true)
	if err == nil {
		t.Fatal("expected remote failure to propagate")
	}
	if inv != nil {
		t.Errorf("expected no inventory on failure, got %v", inv)
	}
}

func TestSourceConstructedRules(t *testing.T) {
	client := &stubClient{vms: []one.Attributes{rawActiveVM("1", "web1")}}

	source := NewSource(client, nil, SourceOptions{
		HostnamePreference: "name",
		Groups:             map[string]string{"running": `state == "active"`},
		KeyedGroups:        []KeyedGroup{{Key: "state", Prefix: "one"}},
	}, logger.Discard())

	inv, err := source.Parse("production.one.yml", true)
	if err != nil {
		t.Fatal(err)
	}

	for _, groupName := range []string{"running", "one_active"} {
		group, exists := inv.Groups[groupName]
		if !exists || !contains(group.Hosts, "web1") {
			t.Errorf("expected web1 in group %q, groups = %v", groupName, groupNames(inv))
		}
	}
}
