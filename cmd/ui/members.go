package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/libprohq/libpro"
)

type registerRequest struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Confirm  string `json:"confirm" form:"confirm"`
}

func (app *uiApp) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}

	member, err := app.members.Register(req.Name, req.Email, req.Password, req.Confirm)
	switch err {
	case nil:
	case libpro.ErrDuplicateEmail:
		c.JSON(409, gin.H{
			"msg": "Email already registered. Please login.",
		})
		return
	default:
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"member": member,
		"msg":    fmt.Sprintf("Registered! Your membership: %s", member.MembershipNumber),
	})
}

type loginRequest struct {
	Membership string `json:"membership" form:"membership"`
	Password   string `json:"password" form:"password"`
}

func (app *uiApp) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}

	member, err := app.members.Login(req.Membership, req.Password)
	switch err {
	case nil:
	case libpro.ErrMemberNotFound:
		c.JSON(404, gin.H{
			"msg": err.Error(),
		})
		return
	case libpro.ErrWrongPassword:
		c.JSON(401, gin.H{
			"msg": err.Error(),
		})
		return
	default:
		c.JSON(400, gin.H{
			"msg": err.Error(),
		})
		return
	}

	c.JSON(200, gin.H{
		"member": member,
		"msg":    fmt.Sprintf("Welcome back, %s!", member.Name),
	})
}

func (app *uiApp) logout(c *gin.Context) {
	app.members.Logout()
	c.JSON(200, gin.H{
		"msg": "You have been logged out",
	})
}

func (app *uiApp) currentMember(c *gin.Context) {
	member, ok := app.members.Current()
	if !ok {
		c.JSON(404, gin.H{
			"msg": "nobody is logged in",
		})
		return
	}
	c.JSON(200, member)
}
