package ecs

import (
	"github.com/decker502/skillaction/pkg/render"
	"github.com/decker502/skillaction/pkg/scripting"
	"github.com/decker502/skillaction/pkg/utils"
	"go.uber.org/zap"
)

// World 场景向实体开放的查询接口
type World interface {
	GetEntity(id ObjectID) Object
	GetEntityByName(name string) Object
	Frame() uint64
}

// Services 场景在创建实体时注入的服务
// 替代全局单例：渲染器、相机、输入、脚本、日志都通过这里获取。
type Services struct {
	Renderer render.Service
	Camera   render.CameraService
	Input    utils.Input
	Scripts  *scripting.Engine
	Logger   *zap.Logger
	World    World

	// 逻辑分辨率（像素），用于屏幕坐标换算
	ScreenWidth, ScreenHeight int
}
