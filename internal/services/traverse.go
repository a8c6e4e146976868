package services

// collectSubtree 按父子关系收集 root 及其全部后代的 ID。
//
// 用迭代的 BFS 而不是递归：评论树深度没有上限，递归在深树上会耗尽
// 调用栈。visited 集合保证即使存储中的数据被破坏成环，遍历也会终止。
// children 一次返回一批父节点的全部直接子节点 ID。
func collectSubtree(root uint, children func(parents []uint) ([]uint, error)) ([]uint, error) {
	visited := map[uint]bool{root: true}
	order := []uint{root}

	frontier := []uint{root}
	for len(frontier) > 0 {
		next, err := children(frontier)
		if err != nil {
			return nil, err
		}
		frontier = frontier[:0]
		for _, id := range next {
			if visited[id] {
				continue
			}
			visited[id] = true
			order = append(order, id)
			frontier = append(frontier, id)
		}
	}
	return order, nil
}
