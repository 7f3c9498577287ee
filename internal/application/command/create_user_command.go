package command

import "bloglist-service/internal/application/common"

type CreateUserCommand struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type CreateUserCommandResult struct {
	Result *common.UserResult `json:"result"`
}
