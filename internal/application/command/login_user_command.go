package command

import "bloglist-service/internal/domain/policy"

type LoginUserCommand struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginUserCommandResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type LogoutUserCommand struct {
	Caller *policy.Identity
}
