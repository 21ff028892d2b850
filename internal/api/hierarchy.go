package api

import "context"

type hierarchyResponse struct {
	Envelope
	Roots    []HierarchyEntry            `json:"roots"`
	Children map[string][]HierarchyEntry `json:"children"`
}

// GetHierarchy fetches the flat hierarchy snapshot: root managers plus the
// manager-name to direct-reports mapping the tree renderer consumes.
func (c *Client) GetHierarchy(ctx context.Context) (Hierarchy, error) {
	var resp hierarchyResponse
	if err := c.getJSON(ctx, "get hierarchy", "/api/hierarchy", nil, &resp); err != nil {
		return Hierarchy{}, err
	}
	return Hierarchy{Roots: resp.Roots, Children: resp.Children}, nil
}

type hierarchyTreeResponse struct {
	Envelope
	Tree       []HierarchyNode `json:"tree"`
	Statistics TreeStats       `json:"statistics"`
}

// GetHierarchyTree fetches the nested tree snapshot with organizational
// statistics.
func (c *Client) GetHierarchyTree(ctx context.Context) (HierarchyTree, error) {
	var resp hierarchyTreeResponse
	if err := c.getJSON(ctx, "get hierarchy tree", "/api/hierarchy/tree", nil, &resp); err != nil {
		return HierarchyTree{}, err
	}
	return HierarchyTree{Roots: resp.Tree, Stats: resp.Statistics}, nil
}
