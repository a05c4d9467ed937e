package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parent(id int64) *int64 {
	return &id
}

func TestBuildPermissionTree(t *testing.T) {
	perms := []Permission{
		{Id: 1, Code: "system", ParentId: nil},
		{Id: 2, Code: "system:user", ParentId: parent(1)},
		{Id: 3, Code: "system:role", ParentId: parent(1)},
		{Id: 4, Code: "system:user:add", ParentId: parent(2)},
	}

	tree := BuildPermissionTree(perms)

	require.Len(t, tree, 1)
	root := tree[0]
	assert.Equal(t, int64(1), root.Id)
	require.Len(t, root.Children, 2)
	assert.Equal(t, int64(2), root.Children[0].Id)
	assert.Equal(t, int64(3), root.Children[1].Id)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, int64(4), root.Children[0].Children[0].Id)
	assert.Empty(t, root.Children[1].Children)
}

func TestBuildPermissionTreeSiblingOrderById(t *testing.T) {
	// names deliberately reversed, order must still follow the input ids
	perms := []Permission{
		{Id: 1, Name: "zzz", ParentId: nil},
		{Id: 2, Name: "bbb", ParentId: parent(1)},
		{Id: 3, Name: "aaa", ParentId: parent(1)},
	}

	tree := BuildPermissionTree(perms)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "bbb", tree[0].Children[0].Name)
	assert.Equal(t, "aaa", tree[0].Children[1].Name)
}

func TestBuildPermissionTreeDropsOrphans(t *testing.T) {
	perms := []Permission{
		{Id: 1, Code: "system", ParentId: nil},
		{Id: 5, Code: "ghost", ParentId: parent(99)},
	}

	tree := BuildPermissionTree(perms)

	require.Len(t, tree, 1)
	assert.Equal(t, int64(1), tree[0].Id)
	assert.Empty(t, tree[0].Children)
}

func TestBuildPermissionTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildPermissionTree(nil))
}
