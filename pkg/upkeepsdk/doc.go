/*
Package upkeepsdk is a Go client for the UpKeep company access API.

Public operations hang off SDKClient. Everything that acts on behalf of a
customer goes through a Session, which carries the customer's access token
issued by the identity provider:

	client := upkeepsdk.NewSDKClient("https://api.upkeep.dev")

	// Preview an invitation link without signing in.
	details, err := client.GetInvitation(ctx, token)

	session := client.NewSession(accessToken)
	_, err = session.RegisterMe(ctx)

	company, err := session.CreateCompany(ctx, upkeepsdk.CreateCompanyRequest{Name: "Acme Corp"})
	inv, err := session.InviteMember(ctx, company.CompanyID, upkeepsdk.InviteRequest{
		Email: "bob@example.com",
		Role:  upkeepsdk.RoleMember,
	})

# Errors

Every non-2xx response is returned as *APIError. Use IsCode to branch on
the error code:

	_, err := session.UpdateMemberRole(ctx, companyID, membershipID, upkeepsdk.RoleMember)
	if upkeepsdk.IsCode(err, upkeepsdk.ErrorCodeLastOwner) {
		// promote someone else first
	}
*/
package upkeepsdk
