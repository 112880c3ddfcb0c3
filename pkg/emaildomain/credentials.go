package emaildomain

import (
	"encoding/json"

	"github.com/klothoplatform/sesdomain/pkg/naming"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"go.uber.org/zap"
)

const policyVersion = "2012-10-17"

type (
	PolicyDocument struct {
		Version   string
		Statement []StatementEntry
	}

	StatementEntry struct {
		Effect    string
		Action    []string
		Resource  string
		Condition *Condition `json:",omitempty"`
	}

	Condition struct {
		// StringLike matches with '*' and '?' wildcards, not regular expressions.
		StringLike map[string]string `json:",omitempty"`
	}
)

// SendingPolicy allows the send actions only when the From address matches allowedSender.
func SendingPolicy(conv naming.Conventions, allowedSender string) *PolicyDocument {
	return &PolicyDocument{
		Version: policyVersion,
		Statement: []StatementEntry{
			{
				Effect:   "Allow",
				Action:   append([]string(nil), conv.SendActions...),
				Resource: "*",
				Condition: &Condition{
					StringLike: map[string]string{
						conv.FromAddressConditionKey: allowedSender,
					},
				},
			},
		},
	}
}

// credentials declares the sending user, its inline policy and its access key. The user, policy
// and key are only ever created together.
func (d *declaration) credentials() (*iam.AccessKey, error) {
	user, err := iam.NewUser(d.ctx, d.resourceName(UserSuffix), &iam.UserArgs{
		Name: pulumi.String(d.conv.PrincipalName(d.names.ResourcePrefix)),
		Path: pulumi.String(d.conv.PrincipalPath),
		Tags: pulumi.ToStringMap(d.tags),
	}, d.opts...)
	if err != nil {
		return nil, err
	}

	doc, err := json.Marshal(SendingPolicy(d.conv, d.names.AllowedSender))
	if err != nil {
		return nil, err
	}
	_, err = iam.NewUserPolicy(d.ctx, d.resourceName(UserPolicySuffix), &iam.UserPolicyArgs{
		User:   user.Name,
		Policy: pulumi.String(string(doc)),
	}, d.opts...)
	if err != nil {
		return nil, err
	}

	key, err := iam.NewAccessKey(d.ctx, d.resourceName(AccessKeySuffix), &iam.AccessKeyArgs{
		User: user.Name,
	}, d.opts...)
	if err != nil {
		return nil, err
	}
	d.log.Debug("declared sending credentials", zap.String("allowed_sender", d.names.AllowedSender))
	return key, nil
}
