package meme

import (
	"strings"

	"github.com/cockroachdb/errors"

	"radix-meme/pkg/radix"
)

const DeploymentLatest = "latest"

var ErrUnknownDeployment = errors.New("unknown deployment")

// Deployment 一次协议部署: dApp 定义账户与 registry 组件
type Deployment struct {
	DAppDefinition   string `json:"dAppDefinition"`
	ComponentAddress string `json:"componentAddress"`
}

// 已知部署, mainnet 尚未发布
var addressBook = map[radix.Network]map[string]Deployment{
	radix.NetworkMainnet: {
		DeploymentLatest: {},
	},
	radix.NetworkStokenet: {
		DeploymentLatest: {
			DAppDefinition:   "account_tdx_2_1c9vx8umn2cu5nhrgzxxcl83l89lnukhcj9974h5duzltg5rznun6ly",
			ComponentAddress: "component_tdx_2_1cqxv84t8tya5q0rwasdlwyu57cyw9x52trsgfqarjfc0yx0f4980g7",
		},
		"v1": {
			DAppDefinition:   "account_tdx_2_1c82ga7u742dx8qdvxf7jj5a77ke2r6juwcgvpa9z8eacye9fvhyq4t",
			ComponentAddress: "component_tdx_2_1cqksjzx0rfwykk03p7vhsk92pwues9dgs5hj3jn4yc5fv0hrmy44fs",
		},
		"v2": {
			DAppDefinition:   "account_tdx_2_1cx6gtvkqujyzn520melqnfn6cgg8g5ukvsgleup0mz2zcnymq5lnup",
			ComponentAddress: "component_tdx_2_1cq5mvvmtr7xq90c5nkyxrlzdd2genzu9cdlv4q9mfjd8zslagat8lx",
		},
	},
}

// LookupDeployment 按网络和版本名查找部署, 版本名为空时取 latest
func LookupDeployment(network radix.Network, name string) (Deployment, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DeploymentLatest
	}
	deployment, ok := addressBook[network][name]
	if !ok {
		return Deployment{}, errors.Wrapf(ErrUnknownDeployment, "%s/%s", network, name)
	}
	return deployment, nil
}
