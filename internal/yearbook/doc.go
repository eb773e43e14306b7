// Package yearbook 实现年鉴插件：在引导阶段把所有钩子登记到 hooks.Registry，
// 并提供 the_content 过滤器，为学生实体追加课程与学生详情元数据。
//
// 宿主（事件分发、实体/分类法/自定义字段存储）通过本包声明的接口注入，
// 插件自身不持有跨请求状态。
package yearbook
