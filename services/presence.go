package services

import "sync"

// Presence 在线连接注册表：连接 ID -> 用户 ID
//
// 按连接计数，不按用户去重：同一个用户开多个连接时，
// 每个连接各有一条记录，断开时也各发一次下线通知。
// 需要"用户级"在线状态的调用方要自己去重。
type Presence struct {
	mu    sync.RWMutex
	conns map[string]uint
}

// NewPresence 创建空注册表
func NewPresence() *Presence {
	return &Presence{conns: make(map[string]uint)}
}

// Register 登记连接，已存在时返回 false（不覆盖）
func (p *Presence) Register(connID string, userID uint) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.conns[connID]; ok {
		return false
	}
	p.conns[connID] = userID
	return true
}

// Unregister 注销连接，返回之前绑定的用户 ID
func (p *Presence) Unregister(connID string) (uint, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	userID, ok := p.conns[connID]
	if ok {
		delete(p.conns, connID)
	}
	return userID, ok
}

// Lookup 查询连接对应的用户
func (p *Presence) Lookup(connID string) (uint, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	userID, ok := p.conns[connID]
	return userID, ok
}
