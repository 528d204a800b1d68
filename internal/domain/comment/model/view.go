package model

import (
	"inspyre/pkg/apperr"
	"inspyre/pkg/utils"
)

// CommentView 面向观察者的评论表示，replies 与根节点同构，逐层嵌套
type CommentView struct {
	ID             uint           `json:"id"`
	Owner          string         `json:"owner"`
	IsOwner        bool           `json:"is_owner"`
	ProfileID      uint           `json:"profile_id"`
	ProfileImage   string         `json:"profile_image"`
	Post           uint           `json:"post"`
	Parent         *uint          `json:"parent"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
	Content        string         `json:"content"`
	ApprovalStatus int            `json:"approval_status"`
	Replies        []*CommentView `json:"replies"`
}

// newCommentView 纯函数 (Comment, viewer) -> CommentView，时间戳人性化展示
func newCommentView(row *CommentWithOwner, viewerID uint) *CommentView {
	return &CommentView{
		ID:             row.ID,
		Owner:          row.OwnerUsername,
		IsOwner:        viewerID != 0 && viewerID == row.OwnerID,
		ProfileID:      row.ProfileID,
		ProfileImage:   row.ProfileImage,
		Post:           row.PostID,
		Parent:         row.ParentID,
		CreatedAt:      utils.NaturalTime(row.CreatedAt),
		UpdatedAt:      utils.NaturalTime(row.UpdatedAt),
		Content:        row.Content,
		ApprovalStatus: row.ApprovalStatus,
		Replies:        []*CommentView{},
	}
}

// BuildTrees 把一个帖子的全部评论行组装成顶层评论树。
//
// rows 必须已按 created_at 降序排好；组装分两遍完成，不做递归：
// 第一遍为每行建视图并按行序挂到父节点的 replies（保持每个回复簇内部新的在前），
// 第二遍用显式队列从根向下量深度，超过 maxDepth 直接失败，
// 防止病态回复链打爆调用栈。
// 返回顶层树、id 到节点的索引（取子树用）。
func BuildTrees(rows []CommentWithOwner, viewerID uint, maxDepth int) ([]*CommentView, map[uint]*CommentView, error) {
	index := make(map[uint]*CommentView, len(rows))
	roots := make([]*CommentView, 0)
	for i := range rows {
		index[rows[i].ID] = newCommentView(&rows[i], viewerID)
	}

	for i := range rows {
		view := index[rows[i].ID]
		if view.Parent == nil {
			roots = append(roots, view)
			continue
		}
		if parent, ok := index[*view.Parent]; ok {
			parent.Replies = append(parent.Replies, view)
		}
		// 父节点不在本帖行集里说明数据异常，丢弃该簇而不是崩溃
	}

	// 广度优先量深度。环上的节点从根不可达，天然不会被无限遍历
	type item struct {
		view  *CommentView
		depth int
	}
	queue := make([]item, 0, len(roots))
	for _, root := range roots {
		queue = append(queue, item{root, 1})
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth > maxDepth {
			return nil, nil, apperr.DepthExceeded("Comment thread exceeds maximum depth")
		}
		for _, reply := range cur.view.Replies {
			queue = append(queue, item{reply, cur.depth + 1})
		}
	}

	return roots, index, nil
}
