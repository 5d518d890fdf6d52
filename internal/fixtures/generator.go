// Package fixtures fabricates lightweight bilingual contract samples for
// demos and tests, without relying on proprietary documents.
package fixtures

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

const zhTemplate = `# 服务合同

**合同编号**: %s

| 项目        | 说明 |
| ----------- | ---- |
| 甲方        | %s |
| 乙方        | %s |
| 合同金额    | %s |
| 签署日期    | %s |
| 生效日期    | %s |
| 到期日期    | %s |

## 第一条 服务内容

乙方应按照甲方要求提供专业化服务，并确保交付成果满足双方约定的质量标准。

## 第二条 费用及支付方式

甲方应在合同生效后五个工作日内支付合同总金额的 50%%，剩余款项于项目验收后七日内付清。

## 第三条 保密义务

双方对在合同履行过程中获知的任何商业信息负有严格的保密义务。
`

const enTemplate = `# Professional Services Agreement

**Contract ID**: %s

| Item            | Details |
| --------------- | ------- |
| Party A         | %s |
| Party B         | %s |
| Total Amount    | %s |
| Date of Signature | %s |
| Effective Date  | %s |
| Expiry Date     | %s |

## Article 1 - Scope

Party B shall deliver the agreed scope of work to Party A in accordance with
the milestones defined in Annex A.

## Article 2 - Payment

Party A shall remit 50%% of the total amount within five business days after
the contract becomes effective. The remaining balance is due within seven
days after final acceptance.

## Article 3 - Confidentiality

Both parties commit to keeping all trade secrets confidential.
`

// Sample is one synthetic contract.
type Sample struct {
	Language        string // "zh" or "en"
	ContractID      string
	PartyA          string
	PartyB          string
	Amount          string
	SignDate        string
	EffectiveDate   string
	TerminationDate string
}

// RenderMarkdown produces the sample's markdown body.
func (s Sample) RenderMarkdown() string {
	template := enTemplate
	if s.Language == "zh" {
		template = zhTemplate
	}
	return fmt.Sprintf(template,
		s.ContractID, s.PartyA, s.PartyB, s.Amount,
		s.SignDate, s.EffectiveDate, s.TerminationDate,
	)
}

var partiesZH = [][2]string{
	{"北京星河科技有限公司", "上海明远数字有限公司"},
	{"杭州未来医疗科技公司", "深圳云帆信息科技有限公司"},
}

var partiesEN = [][2]string{
	{"Aurora Analytics LLC", "Blue Harbor Consulting Ltd."},
	{"Nebula Labs Inc.", "Southwind Solutions Co."},
}

func randomDate(rng *rand.Rand) string {
	year := 2020 + rng.Intn(6)
	month := 1 + rng.Intn(12)
	day := 1 + rng.Intn(28)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func randomDateCN(rng *rand.Rand) string {
	year := 2020 + rng.Intn(6)
	month := 1 + rng.Intn(12)
	day := 1 + rng.Intn(28)
	return fmt.Sprintf("%d年%d月%d日", year, month, day)
}

func randomAmount(rng *rand.Rand, currency string) string {
	value := (10 + rng.Intn(491)) * 1000
	if currency == "CNY" {
		return fmt.Sprintf("人民币 %s 元", groupThousands(value))
	}
	return fmt.Sprintf("USD %s.00", groupThousands(value))
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

// NewSamples builds count deterministic samples, alternating Chinese and
// English, using the given seed.
func NewSamples(count int, seed int64) []Sample {
	rng := rand.New(rand.NewSource(seed))
	samples := make([]Sample, 0, count)
	for idx := 0; idx < count; idx++ {
		if idx%2 == 0 {
			parties := partiesZH[(idx/2)%len(partiesZH)]
			samples = append(samples, Sample{
				Language:        "zh",
				ContractID:      fmt.Sprintf("CN-%03d", idx+1),
				PartyA:          parties[0],
				PartyB:          parties[1],
				Amount:          randomAmount(rng, "CNY"),
				SignDate:        randomDateCN(rng),
				EffectiveDate:   randomDateCN(rng),
				TerminationDate: randomDateCN(rng),
			})
			continue
		}
		parties := partiesEN[(idx/2)%len(partiesEN)]
		samples = append(samples, Sample{
			Language:        "en",
			ContractID:      fmt.Sprintf("EN-%03d", idx+1),
			PartyA:          parties[0],
			PartyB:          parties[1],
			Amount:          randomAmount(rng, "USD"),
			SignDate:        randomDate(rng),
			EffectiveDate:   randomDate(rng),
			TerminationDate: randomDate(rng),
		})
	}
	return samples
}

// Generate writes count samples as markdown files under dir and returns them.
func Generate(dir string, count int, seed int64) ([]Sample, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create fixture dir: %w", err)
	}
	samples := NewSamples(count, seed)
	for _, sample := range samples {
		path := filepath.Join(dir, sample.ContractID+".md")
		if err := os.WriteFile(path, []byte(sample.RenderMarkdown()), 0o644); err != nil {
			return nil, fmt.Errorf("write fixture %s: %w", sample.ContractID, err)
		}
	}
	return samples, nil
}
