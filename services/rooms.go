package services

import (
	"fmt"
	"sync"
)

// Rooms 聊天房间成员表：房间 key -> 连接 ID 集合
//
// 房间没有持久化，最后一个成员离开时整个条目被删掉。
// key 对这里是不透明字符串，谁都可以加入任何房间
// （没有校验加入者是不是房间 key 里的参与者）。
type Rooms struct {
	mu    sync.RWMutex
	rooms map[string]map[string]bool
}

// NewRooms 创建空成员表
func NewRooms() *Rooms {
	return &Rooms{rooms: make(map[string]map[string]bool)}
}

// Join 把连接加入房间
func (r *Rooms) Join(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[room] == nil {
		r.rooms[room] = make(map[string]bool)
	}
	r.rooms[room][connID] = true
}

// Leave 把连接移出房间，房间空了就删掉
func (r *Rooms) Leave(connID, room string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if members, ok := r.rooms[room]; ok {
		delete(members, connID)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}
}

// LeaveAll 把连接从所有房间移出（断开时用），返回离开的房间列表
func (r *Rooms) LeaveAll(connID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var left []string
	for room, members := range r.rooms {
		if members[connID] {
			delete(members, connID)
			left = append(left, room)
			if len(members) == 0 {
				delete(r.rooms, room)
			}
		}
	}
	return left
}

// Members 返回房间当前成员的连接 ID 快照
func (r *Rooms) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members, ok := r.rooms[room]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(members))
	for id := range members {
		out = append(out, id)
	}
	return out
}

// RoomKey 生成两个用户的私聊房间 key，双方算出来一致
func RoomKey(userA, userB uint) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("%d-%d", userA, userB)
}

// RoomKeyForItem 带物品上下文的房间 key
func RoomKeyForItem(userA, userB, itemID uint) string {
	return fmt.Sprintf("%s-item-%d", RoomKey(userA, userB), itemID)
}
