package graphql

import (
	"github.com/graphql-go/graphql"

	"Feedline/internal/api/middleware"
	"Feedline/internal/core/posts"
	"Feedline/internal/core/users"
)

func (r Resolvers) resolveLogin(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	resp, err := r.Users.Login(p.Context, email, password)
	if err != nil {
		return nil, wrapError(err)
	}
	return resp, nil
}

func (r Resolvers) resolveUser(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.Users.Get(p.Context, middleware.IdentityFrom(p.Context))
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func (r Resolvers) resolvePosts(p graphql.ResolveParams) (interface{}, error) {
	page, _ := p.Args["page"].(int)

	feed, err := r.Posts.List(p.Context, page)
	if err != nil {
		return nil, wrapError(err)
	}
	return map[string]interface{}{
		"posts":      feed.Posts,
		"totalPosts": feed.TotalCount,
	}, nil
}

func (r Resolvers) resolvePost(p graphql.ResolveParams) (interface{}, error) {
	postID, _ := p.Args["postId"].(string)

	view, err := r.Posts.Get(p.Context, postID)
	if err != nil {
		return nil, wrapError(err)
	}
	return view, nil
}

func (r Resolvers) resolveCreateUser(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["userInput"].(map[string]interface{})
	req := users.SignupRequest{
		Email:    stringArg(input, "email"),
		Name:     stringArg(input, "name"),
		Password: stringArg(input, "password"),
	}

	user, err := r.Users.Signup(p.Context, req)
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func (r Resolvers) resolveCreatePost(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["postInput"].(map[string]interface{})
	fields := posts.Fields{
		Title:   stringArg(input, "title"),
		Content: stringArg(input, "content"),
	}

	view, err := r.Posts.Create(p.Context, middleware.IdentityFrom(p.Context), fields, stringArg(input, "imageKey"))
	if err != nil {
		return nil, wrapError(err)
	}
	return view, nil
}

func (r Resolvers) resolveUpdatePost(p graphql.ResolveParams) (interface{}, error) {
	postID, _ := p.Args["postId"].(string)
	input, _ := p.Args["postInput"].(map[string]interface{})
	fields := posts.Fields{
		Title:   stringArg(input, "title"),
		Content: stringArg(input, "content"),
	}

	// imageKey absent or null means the attachment is unchanged; present
	// but empty is "no file picked" and rejected by the service.
	var newKey *string
	if raw, ok := input["imageKey"]; ok && raw != nil {
		key, _ := raw.(string)
		newKey = &key
	}

	view, err := r.Posts.Update(p.Context, middleware.IdentityFrom(p.Context), postID, fields, newKey)
	if err != nil {
		return nil, wrapError(err)
	}
	return view, nil
}

func (r Resolvers) resolveDeletePost(p graphql.ResolveParams) (interface{}, error) {
	postID, _ := p.Args["postId"].(string)

	if err := r.Posts.Delete(p.Context, middleware.IdentityFrom(p.Context), postID); err != nil {
		return nil, wrapError(err)
	}
	return true, nil
}

func (r Resolvers) resolveUpdateStatus(p graphql.ResolveParams) (interface{}, error) {
	status, _ := p.Args["status"].(string)

	user, err := r.Users.UpdateStatus(p.Context, middleware.IdentityFrom(p.Context), status)
	if err != nil {
		return nil, wrapError(err)
	}
	return user, nil
}

func stringArg(input map[string]interface{}, key string) string {
	s, _ := input[key].(string)
	return s
}
