package api

type AddFriendRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type AddFriendResponse struct {
	Friend *Friend `json:"friend"`
}

type GetFriendRequest struct {
	ID string `json:"id" validate:"required"`
}

type GetFriendResponse struct {
	Friend *Friend `json:"friend"`
}

type ListFriendsRequest struct{}

type ListFriendsResponse struct {
	Friends []*Friend `json:"friends"`
}

type DeleteFriendRequest struct {
	ID string `json:"id" validate:"required"`
}

type DeleteFriendResponse struct{}
