// Package docs swagger 文档（swag init 生成，手工精简）
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/v1/auth/signup": {"post": {"tags": ["用户"], "summary": "注册用户", "responses": {"201": {"description": "Created"}}}},
        "/api/v1/auth/login": {"post": {"tags": ["用户"], "summary": "登录", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/auth/me": {"get": {"tags": ["用户"], "summary": "当前用户", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/blogs": {
            "get": {"tags": ["博文"], "summary": "按标签搜索博文", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["博文"], "summary": "发布博文", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/blogs/{id}": {"get": {"tags": ["博文"], "summary": "博文详情", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/blogs/{id}/comments": {
            "get": {"tags": ["评论"], "summary": "评论列表", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["评论"], "summary": "发表评论", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/v1/relations/follow": {"post": {"tags": ["关系链"], "summary": "关注用户", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/relations/unfollow": {"post": {"tags": ["关系链"], "summary": "取消关注", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/co-posted-tags": {"get": {"tags": ["报表"], "summary": "Q1", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/most-blogs": {"get": {"tags": ["报表"], "summary": "Q2", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/common-followees": {"get": {"tags": ["报表"], "summary": "Q3", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/no-blogs": {"get": {"tags": ["报表"], "summary": "Q4", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/all-positive-blogs": {"get": {"tags": ["报表"], "summary": "Q5", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/always-negative-reviewers": {"get": {"tags": ["报表"], "summary": "Q6", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/reports/never-negative-owners": {"get": {"tags": ["报表"], "summary": "Q7", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "bloghub API",
	Description:      "社区博客：注册登录、发文、评论、关注与报表",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
