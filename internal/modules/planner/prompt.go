// README: Deterministic prompt construction for travel-plan generation.
package planner

import (
	"fmt"
	"strings"
)

// SystemInstruction is sent alongside every generation prompt.
const SystemInstruction = "你是一个专业的旅游规划助手，能够合理的帮助用户规划具体的旅游方案。你的回答必须是纯JSON格式，不要添加任何额外的解释文字。"

// planSchemaExample is the literal example object embedded in every prompt so
// the model knows the exact shape to return.
const planSchemaExample = `{
  "overview": "旅游计划概述",
  "daily_plans": [
    {
      "day": 1,
      "description": "第一天概述",
      "poi_list": [
        {
          "name": "景点名称",
          "address": "景点地址",
          "latitude": 39.123456,
          "longitude": 116.123456,
          "description": "景点描述",
          "recommended_duration": "2小时"
        }
      ]
    }
  ]
}`

var travelModeLabels = map[string]string{
	ModeWalking: "步行",
	ModeDriving: "驾车",
	ModeTransit: "公共交通",
}

// BuildPrompt renders the instruction text for req. It is deterministic and
// total over validated requests: identical requests yield identical strings,
// and no external service is consulted.
func BuildPrompt(req *TripRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	days := req.travelDays()
	mode := travelModeLabels[req.TravelMode]

	var b strings.Builder
	b.WriteString("请为我生成一份详细的旅游计划，遵循以下要求：\n\n")
	if req.City != "" {
		fmt.Fprintf(&b, "城市: %s\n", req.City)
	}
	fmt.Fprintf(&b, "中心位置: %s\n", centerLine(req))
	if req.usesDates() {
		fmt.Fprintf(&b, "旅行日期: %s 至 %s，共%d天\n",
			req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"), days)
	} else {
		fmt.Fprintf(&b, "旅行天数: %d天\n", days)
	}
	fmt.Fprintf(&b, "出行方式: %s\n", mode)
	if len(req.Preferences) > 0 {
		fmt.Fprintf(&b, "旅行偏好: %s\n", strings.Join(req.Preferences, "、"))
	}
	b.WriteString(scenicSpotsSection(req.ScenicSpots))

	b.WriteString("\n请根据以下要求制定一个合理的旅游行程:\n")
	fmt.Fprintf(&b, "1. 以中心位置为基础，规划%d天的行程\n", days)
	fmt.Fprintf(&b, "2. 考虑到用户的出行方式是%s，规划合理的游览路线\n", mode)
	b.WriteString("3. 每天安排2-4个景点，考虑景点之间的距离和游览时间\n")
	b.WriteString("4. 若用户已选择景点，请确保将这些景点合理地融入到行程中\n")

	b.WriteString("\n你必须严格按照下面的JSON格式返回完整的旅游计划，不要添加任何额外的解释文本：\n\n")
	b.WriteString(planSchemaExample)
	b.WriteString("\n\n请确保：\n")
	b.WriteString("1. 返回的是纯JSON格式，不包含```json标记或任何说明文字\n")
	b.WriteString("2. 所有JSON语法必须准确无误（如引号、逗号等）\n")
	b.WriteString("3. 坐标信息尽量准确\n")
	b.WriteString("4. 只返回这个JSON对象，不要有任何其他内容\n")

	return b.String(), nil
}

// centerLine renders the center reference with whatever detail the request
// carries: name, optional address, optional coordinates.
func centerLine(req *TripRequest) string {
	line := req.CenterName
	if req.CenterAddress != "" {
		line += fmt.Sprintf("（%s）", req.CenterAddress)
	}
	if req.CenterLat != 0 || req.CenterLng != 0 {
		line += fmt.Sprintf("，坐标: (%v, %v)", req.CenterLat, req.CenterLng)
	}
	return line
}

// scenicSpotsSection enumerates pre-selected POIs, 1-based in input order.
// Empty list yields an empty string, not an empty header.
func scenicSpotsSection(spots []PointOfInterest) string {
	if len(spots) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("用户已选择的景点:\n")
	for i, spot := range spots {
		fmt.Fprintf(&b, "%d. %s, 地址: %s, 坐标: (%v, %v)\n",
			i+1, spot.Name, spot.Address, spot.Latitude, spot.Longitude)
	}
	return b.String()
}
