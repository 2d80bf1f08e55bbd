package ecs

import "strings"

// Tag 实体分类标签，场景按它把实体分桶
// 桶的顺序即更新/绘制顺序
type Tag int

const (
	TagNone Tag = iota
	TagSkyBox
	TagField
	TagSound
	TagGameObject
	TagUI
	TagMax
)

var tagNames = [TagMax]string{"None", "SkyBox", "Field", "Sound", "GameObject", "UI"}

// String 返回标签名
func (t Tag) String() string {
	if t < 0 || t >= TagMax {
		return "Invalid"
	}
	return tagNames[t]
}

// Valid 检查标签是否在有效范围内
func (t Tag) Valid() bool {
	return t >= 0 && t < TagMax
}

// ParseTag 按名称（不区分大小写）解析标签，场景布局文件使用
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if strings.EqualFold(n, name) {
			return Tag(i), true
		}
	}
	return TagNone, false
}
