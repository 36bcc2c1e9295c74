package model

// ServiceCategory 服务分类（由公式分类静态映射得到）
type ServiceCategory string

const (
	ServiceData        ServiceCategory = "data-service"
	ServiceLogic       ServiceCategory = "logic-service"
	ServiceCalculation ServiceCategory = "calculation-service"
	ServiceText        ServiceCategory = "text-service"
	ServiceDate        ServiceCategory = "date-service"
	ServiceReference   ServiceCategory = "reference-service"
	ServiceMisc        ServiceCategory = "misc-service"
)

// ServiceDescriptor 生成的服务描述：服务名 + 镜像地址
// DockerImage 由 (ServiceName, ReleaseVersion) 唯一决定
type ServiceDescriptor struct {
	ServiceName     string          `json:"serviceName"`
	ServiceCategory ServiceCategory `json:"serviceCategory"`
	DockerImage     string          `json:"dockerImage"`
}
