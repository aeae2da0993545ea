package one

import (
	"fmt"

	"github.com/kolo/xmlrpc"

	"github.com/jimyag/one-inventory/pkg/errors"
	"github.com/jimyag/one-inventory/pkg/logger"
)

// OpenNebula 每个响应的第三个槽位是错误码
const (
	errCodeSuccess        = 0x0000
	errCodeAuthentication = 0x0100
	errCodeAuthorization  = 0x0200
	errCodeNoExists       = 0x0400
)

// Client 是远端只读操作的边界。
// 只覆盖 inventory 需要的三个查询，不是通用的 OpenNebula SDK。
type Client interface {
	// ListVMs 返回整个 VM 池（extended 信息）的原始属性
	ListVMs() ([]Attributes, error)
	// GetTemplate 按 id 查询模板信息
	GetTemplate(id int) (Attributes, error)
	// GetNetwork 按 id 查询虚拟网络信息
	GetNetwork(id int) (Attributes, error)
}

// XMLRPCClient 通过 XML-RPC 访问 OpenNebula 的 Client 实现
type XMLRPCClient struct {
	rpc     *xmlrpc.Client
	session string
	log     *logger.Logger
}

var _ Client = (*XMLRPCClient)(nil)

// NewClient 创建 XML-RPC 客户端。
// OpenNebula 的认证是 "username:password" 形式的 session 字符串。
func NewClient(endpoint, username, password string, log *logger.Logger) (*XMLRPCClient, error) {
	rpc, err := xmlrpc.NewClient(endpoint, nil)
	if err != nil {
		return nil, errors.NewMissingDependency("XML-RPC transport for "+endpoint, err)
	}

	return &XMLRPCClient{
		rpc:     rpc,
		session: username + ":" + password,
		log:     log,
	}, nil
}

// ListVMs 调用 one.vmpool.infoextended，过滤参数 (-2,-1,-1,-1)
// 表示所有用户可见的 VM、全部 id 范围、全部状态。
func (c *XMLRPCClient) ListVMs() ([]Attributes, error) {
	pool, err := c.call("one.vmpool.infoextended", "vm pool", -1, -2, -1, -1, -1)
	if err != nil {
		return nil, err
	}
	return pool.List("VM"), nil
}

// GetTemplate 调用 one.template.info
func (c *XMLRPCClient) GetTemplate(id int) (Attributes, error) {
	return c.call("one.template.info", "template", id, id)
}

// GetNetwork 调用 one.vn.info
func (c *XMLRPCClient) GetNetwork(id int) (Attributes, error) {
	return c.call("one.vn.info", "virtual network", id, id)
}

// call 执行一次 RPC 并解析状态三元组 (success, payload, errcode)。
// resource 和 id 用于构造 NotFound 错误的描述。
func (c *XMLRPCClient) call(method, resource string, id int, args ...any) (Attributes, error) {
	params := make([]any, 0, len(args)+1)
	params = append(params, c.session)
	params = append(params, args...)

	c.log.Vf(4, "calling %s", method)

	var reply []any
	if err := c.rpc.Call(method, params, &reply); err != nil {
		return nil, errors.NewRemoteFailure(method, err)
	}

	if len(reply) < 2 {
		return nil, errors.NewRemoteFailure(method, fmt.Errorf("malformed reply with %d values", len(reply)))
	}

	if ok, _ := reply[0].(bool); !ok {
		msg, _ := reply[1].(string)
		if len(reply) > 2 && replyErrCode(reply[2]) == errCodeNoExists {
			return nil, errors.NewNotFound(resource, id)
		}
		return nil, errors.NewRemoteFailure(method, fmt.Errorf("%s", msg))
	}

	body, ok := reply[1].(string)
	if !ok {
		return nil, errors.NewRemoteFailure(method, fmt.Errorf("reply payload is %T, not string", reply[1]))
	}

	attrs, err := Decode(body)
	if err != nil {
		return nil, errors.NewRemoteFailure(method, err)
	}
	return attrs, nil
}

// replyErrCode 取出错误码；XML-RPC 解码后整数可能是多种宽度
func replyErrCode(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	}
	return errCodeSuccess
}
