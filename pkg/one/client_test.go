package one

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jimyag/one-inventory/pkg/errors"
	"github.com/jimyag/one-inventory/pkg/logger"
)

// xmlrpcResponse 构造 OpenNebula 风格的 (success, payload, errcode) 响应
func xmlrpcResponse(success bool, payload string, errcode int) string {
	escaped := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(payload)
	flag := 0
	if success {
		flag = 1
	}
	return fmt.Sprintf(`<?xml version="1.0"?>
<methodResponse><params><param><value><array><data>
<value><boolean>%d</boolean></value>
<value><string>%s</string></value>
<value><i4>%d</i4></value>
</data></array></value></param></params></methodResponse>`, flag, escaped, errcode)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *XMLRPCClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "oneadmin", "opennebula", logger.Discard())
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}
	return client
}

func TestClientGetNetwork(t *testing.T) {
	payload := `<VNET><ID>2</ID><TEMPLATE><DOMAIN><![CDATA[corp.local.]]></DOMAIN></TEMPLATE></VNET>`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, xmlrpcResponse(true, payload, 0))
	})

	attrs, err := client.GetNetwork(2)
	if err != nil {
		t.Fatalf("GetNetwork() unexpected error: %v", err)
	}

	template, ok := attrs.Child("TEMPLATE")
	if !ok {
		t.Fatalf("TEMPLATE missing: %v", attrs)
	}
	if domain, _ := template.String("DOMAIN"); domain != "corp.local." {
		t.Errorf("DOMAIN = %q, want corp.local.", domain)
	}
}

func TestClientListVMs(t *testing.T) {
	payload := `<VM_POOL><VM><ID>1</ID><NAME>web1</NAME></VM><VM><ID>2</ID><NAME>web2</NAME></VM></VM_POOL>`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, xmlrpcResponse(true, payload, 0))
	})

	vms, err := client.ListVMs()
	if err != nil {
		t.Fatalf("ListVMs() unexpected error: %v", err)
	}
	if len(vms) != 2 {
		t.Fatalf("expected 2 VMs, got %d", len(vms))
	}
	if name, _ := vms[0].String("NAME"); name != "web1" {
		t.Errorf("first VM NAME = %q", name)
	}
}

func TestClientNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, xmlrpcResponse(false, "Error getting virtual network [2].", errCodeNoExists))
	})

	_, err := client.GetNetwork(2)
	if !errors.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestClientRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, xmlrpcResponse(false, "[one.template.info] User couldn't be authenticated", errCodeAuthentication))
	})

	_, err := client.GetTemplate(7)
	if err == nil {
		t.Fatal("expected error")
	}
	if kind, ok := errors.KindOf(err); !ok || kind != errors.KindRemoteFailure {
		t.Errorf("error kind = %v, want KindRemoteFailure", kind)
	}
}
