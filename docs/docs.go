// Package docs 注册 Fintrack 的 OpenAPI 文档，由 gin-swagger 在 /swagger 下提供。
// 可用 swag init 按 api 包中的注释重新生成
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
    "paths": {
        "/api/users/register": {
            "post": {
                "tags": ["用户"],
                "summary": "用户注册",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "注册信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "注册成功", "schema": {"$ref": "#/definitions/api.RegisterResponse"}},
                    "400": {"description": "参数错误或用户名/邮箱已存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/users/login": {
            "post": {
                "tags": ["用户"],
                "summary": "用户登录",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "登录信息", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "登录成功", "schema": {"$ref": "#/definitions/api.LoginResponse"}},
                    "401": {"description": "用户名或密码错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "429": {"description": "登录过于频繁", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["用户"],
                "summary": "当前用户",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/api.UserResponse"}},
                    "404": {"description": "用户不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["用户"],
                "summary": "注销账户",
                "description": "校验密码后删除账户及其全部收支记录与预算",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "当前密码", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.DeleteAccountRequest"}}
                ],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "401": {"description": "密码错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/users/me/password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["用户"],
                "summary": "修改密码",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "旧密码与新密码", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.ChangePasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "修改成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "旧密码错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["收支记录"],
                "summary": "收支记录列表",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "类别", "name": "category", "in": "query"},
                    {"type": "string", "description": "income 或 expense", "name": "type", "in": "query"},
                    {"type": "string", "description": "开始日期", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "结束日期", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Transaction"}}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["收支记录"],
                "summary": "新建收支记录",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "收支记录", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.TransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "创建成功", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["收支记录"],
                "summary": "收支记录详情",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "记录 ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["收支记录"],
                "summary": "更新收支记录",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "记录 ID", "name": "id", "in": "path", "required": true},
                    {"description": "需要修改的字段", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.TransactionRequest"}}
                ],
                "responses": {
                    "200": {"description": "更新成功", "schema": {"$ref": "#/definitions/models.Transaction"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["收支记录"],
                "summary": "删除收支记录",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "记录 ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/summary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["统计"],
                "summary": "收支汇总",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "开始日期", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "结束日期", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/analytics.Summary"}}
                }
            }
        },
        "/api/transactions/analytics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["统计"],
                "summary": "收支分析",
                "description": "按类别、月份拆分收支，排行项格式为 [类别, 金额]",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "开始日期", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "结束日期", "name": "end_date", "in": "query"},
                    {"type": "integer", "description": "排行榜长度，默认 5", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功"},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/transactions/categories": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["收支记录"],
                "summary": "已使用的类别",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/api/transactions/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["导出"],
                "summary": "导出 CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"type": "string", "description": "开始日期", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "结束日期", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "CSV 文件", "schema": {"type": "file"}}
                }
            }
        },
        "/api/transactions/export/excel": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["导出"],
                "summary": "导出 Excel",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [
                    {"type": "string", "description": "开始日期", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "结束日期", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Excel 文件", "schema": {"type": "file"}}
                }
            }
        },
        "/api/transactions/report": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["统计"],
                "summary": "发送月度报告",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "月份，缺省为当前月", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/api.ReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "发送成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "400": {"description": "参数错误或邮件服务未启用", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/budgets": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["预算"],
                "summary": "预算列表",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "月份 1-12", "name": "month", "in": "query"},
                    {"type": "integer", "description": "年份", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功"},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["预算"],
                "summary": "设置预算",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "预算", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.BudgetRequest"}}
                ],
                "responses": {
                    "200": {"description": "更新成功", "schema": {"$ref": "#/definitions/models.Budget"}},
                    "201": {"description": "创建成功", "schema": {"$ref": "#/definitions/models.Budget"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/budgets/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["预算"],
                "summary": "删除预算",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "预算 ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "404": {"description": "预算不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "analytics.Summary": {
            "type": "object",
            "properties": {
                "balance": {"type": "number"},
                "total_expenses": {"type": "number"},
                "total_income": {"type": "number"}
            }
        },
        "api.LoginResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"},
                "message": {"type": "string", "example": "Login successful"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "api.RegisterResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "User registered successfully"},
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "api.UserResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/models.User"}
            }
        },
        "api.BudgetRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 500},
                "category": {"type": "string", "example": "Food"},
                "month": {"type": "integer", "example": 3},
                "year": {"type": "integer", "example": 2024}
            }
        },
        "api.ChangePasswordRequest": {
            "type": "object",
            "properties": {
                "new_password": {"type": "string"},
                "old_password": {"type": "string"}
            }
        },
        "api.DeleteAccountRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "api.LoginRequest": {
            "type": "object",
            "properties": {
                "password": {"type": "string"},
                "username": {"type": "string", "description": "用户名或邮箱"}
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "api.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "username": {"type": "string"}
            }
        },
        "api.ReportRequest": {
            "type": "object",
            "properties": {
                "month": {"type": "integer", "example": 3},
                "year": {"type": "integer", "example": 2024}
            }
        },
        "api.TransactionRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 25.5},
                "category": {"type": "string", "example": "Food"},
                "date": {"type": "string", "example": "2024-03-01T12:00:00"},
                "description": {"type": "string", "example": "Lunch"},
                "transaction_type": {"type": "string", "enum": ["income", "expense"]}
            }
        },
        "models.Budget": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "integer"},
                "month": {"type": "integer"},
                "user_id": {"type": "integer"},
                "year": {"type": "integer"}
            }
        },
        "models.Transaction": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "category": {"type": "string"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "description": {"type": "string"},
                "id": {"type": "integer"},
                "transaction_type": {"type": "string", "enum": ["income", "expense"]},
                "user_id": {"type": "integer"}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "email": {"type": "string"},
                "id": {"type": "integer"},
                "username": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Fintrack API",
	Description:      "个人记账 API：用户注册登录、收支记录、统计分析、预算与导出",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
