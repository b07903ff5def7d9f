package api

type CreateGroupRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	Members     []string `json:"members" validate:"dive,required"`
}

type CreateGroupResponse struct {
	Group *Group `json:"group"`
}

type GetGroupRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetGroupResponse struct {
	Group *Group `json:"group"`
}

type UpdateGroupRequest struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description,omitempty" validate:"max=500"`
	Members     []string `json:"members" validate:"dive,required"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteGroupResponse struct{}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}
